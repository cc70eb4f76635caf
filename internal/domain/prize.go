package domain

// PrizeRequest describes the minting call for a confirmed win. Everything but
// the recipient is fixed at build time; the struct is immutable once created.
type PrizeRequest struct {
	RecipientAddress  string `json:"recipientAddress"`
	ContractAddress   string `json:"contractAddress"`
	ChainID           int    `json:"chainId"`
	FunctionSignature string `json:"functionSignature"`
}

// TransactionRecord tracks one in-flight prize transaction. The hash is
// attached by confirmation polling; the record is discarded once the response
// referencing it is emitted.
type TransactionRecord struct {
	TransactionID   string `json:"transactionId"`
	TransactionHash string `json:"transactionHash,omitempty"`
}
