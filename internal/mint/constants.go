package mint

import "time"

const (
	// SyndicateAPIBase is the transaction-minting service endpoint
	SyndicateAPIBase = "https://api.syndicate.io"

	// PrizeContractAddress is the prize token contract on Polygon Mumbai
	PrizeContractAddress = "0xbEc332E1eb3EE582B36F979BF803F98591BB9E24"

	// PrizeChainID is the Polygon Mumbai chain id
	PrizeChainID = 80001

	// MintFunctionSignature is the contract call used to issue a prize
	MintFunctionSignature = "mint(address account)"

	// ExplorerTxBase is the block explorer prefix for transaction links
	ExplorerTxBase = "https://mumbai.polygonscan.com/tx/"

	// DefaultPollInterval is the pause between confirmation polls
	DefaultPollInterval = 5 * time.Second

	// DefaultConfirmTimeout bounds the confirmation poll loop
	DefaultConfirmTimeout = 2 * time.Minute

	// maxPollInterval caps the poll backoff
	maxPollInterval = 30 * time.Second
)

// ExplorerTxURL builds a human-readable link for a transaction hash
func ExplorerTxURL(hash string) string {
	return ExplorerTxBase + hash
}

// ValidateAddress reports whether addr looks like an Ethereum address:
// "0x" followed by exactly 40 hex characters. Recipients are validated
// before anything is sent on chain.
func ValidateAddress(addr string) bool {
	if len(addr) != 42 || addr[0] != '0' || (addr[1] != 'x' && addr[1] != 'X') {
		return false
	}
	for _, c := range addr[2:] {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
