package contract

// carmarket is the deployed car-NFT marketplace interface. The contract is
// external: this table mirrors its schema and Bind refuses to operate when
// a required method is absent (see requiredMethods).
//
// Function selectors:
//
//	owner()                        → 0x8da5cb5b
//	getAvailableNfts()             → dynamic uint256[]
//	getCarMetadata(uint256)        → (make, model, year, imageUrl, price, owner, forSale, metadataURI)
//	adminMintNft(a,s,s,u,s,u)      → privileged mint, optional recipient
//	setForSale(uint256,uint256)
//	buyCarNft(uint256) payable
var carmarketABI = []ABIEntry{
	// ── Read ────────────────────────────────────────────────────────────
	{
		Name: "owner", Type: "function",
		Inputs: nil, Outputs: []ABIParam{{Name: "", Type: "address"}},
		StateMutability: "view",
	},
	{
		Name: "getAvailableNfts", Type: "function",
		Inputs:          nil,
		Outputs:         []ABIParam{{Name: "", Type: "uint256[]"}},
		StateMutability: "view",
	},
	{
		Name: "getCarMetadata", Type: "function",
		Inputs: []ABIParam{{Name: "tokenId", Type: "uint256"}},
		Outputs: []ABIParam{
			{Name: "make", Type: "string"},
			{Name: "model", Type: "string"},
			{Name: "year", Type: "uint256"},
			{Name: "imageUrl", Type: "string"},
			{Name: "price", Type: "uint256"},
			{Name: "owner", Type: "address"},
			{Name: "forSale", Type: "bool"},
			{Name: "metadataURI", Type: "string"},
		},
		StateMutability: "view",
	},
	// ── Write ───────────────────────────────────────────────────────────
	{
		Name: "adminMintNft", Type: "function",
		Inputs: []ABIParam{
			{Name: "to", Type: "address"},
			{Name: "make", Type: "string"},
			{Name: "model", Type: "string"},
			{Name: "year", Type: "uint256"},
			{Name: "metadataURI", Type: "string"},
			{Name: "price", Type: "uint256"},
		},
		Outputs:         nil,
		StateMutability: "nonpayable",
	},
	{
		Name: "setForSale", Type: "function",
		Inputs: []ABIParam{
			{Name: "tokenId", Type: "uint256"},
			{Name: "price", Type: "uint256"},
		},
		Outputs:         nil,
		StateMutability: "nonpayable",
	},
	{
		Name: "buyCarNft", Type: "function",
		Inputs:          []ABIParam{{Name: "tokenId", Type: "uint256"}},
		Outputs:         nil,
		StateMutability: "payable",
	},
	// ── Events ──────────────────────────────────────────────────────────
	{
		Name: "CarNFTMinted", Type: "event",
		Inputs: []ABIParam{
			{Name: "to", Type: "address", Indexed: true},
			{Name: "tokenId", Type: "uint256", Indexed: true},
			{Name: "metadataURI", Type: "string"},
		},
	},
	{
		Name: "Transfer", Type: "event",
		Inputs: []ABIParam{
			{Name: "from", Type: "address", Indexed: true},
			{Name: "to", Type: "address", Indexed: true},
			{Name: "tokenId", Type: "uint256", Indexed: true},
		},
	},
}

// MarketplaceABI returns the built-in marketplace ABI.
func MarketplaceABI() []ABIEntry { return carmarketABI }

// requiredMethods are the calls the client cannot work without.
var requiredMethods = []string{
	"owner",
	"getAvailableNfts",
	"getCarMetadata",
	"adminMintNft",
	"setForSale",
	"buyCarNft",
}
