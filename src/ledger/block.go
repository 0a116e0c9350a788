package ledger

// Block packs a coinbase and an ordered list of transactions on top of the
// block identified by PrevBlockHash. Only the genesis block has an empty
// PrevBlockHash.
type Block struct {
	PrevBlockHash string
	Coinbase      *Transaction
	Transactions  []*Transaction `codec:",omitempty"`

	hash string
}

// NewBlock creates a block extending prevHash whose coinbase pays value to
// address.
func NewBlock(prevHash string, value float64, address []byte) *Block {
	return &Block{
		PrevBlockHash: prevHash,
		Coinbase:      NewCoinbase(value, address, prevHash),
		Transactions:  []*Transaction{},
	}
}

// NewGenesisBlock ...
func NewGenesisBlock(value float64, address []byte) *Block {
	return NewBlock("", value, address)
}

// AddTransaction appends tx to the block.
func (b *Block) AddTransaction(tx *Transaction) {
	b.Transactions = append(b.Transactions, tx)
	b.hash = ""
}

// HasPrev returns false for a block that does not reference a parent.
func (b *Block) HasPrev() bool {
	return b.PrevBlockHash != ""
}

type blockHeader struct {
	PrevBlockHash string
	Coinbase      string
	Transactions  []string `codec:",omitempty"`
}

// Hash identifies the block by its parent, its coinbase and the hashes of its
// transactions, in order.
func (b *Block) Hash() string {
	if b.hash == "" {
		header := blockHeader{
			PrevBlockHash: b.PrevBlockHash,
			Transactions:  make([]string, len(b.Transactions)),
		}
		if b.Coinbase != nil {
			header.Coinbase = b.Coinbase.Hash()
		}
		for i, tx := range b.Transactions {
			header.Transactions[i] = tx.Hash()
		}
		b.hash = identifier(header)
	}
	return b.hash
}

// Marshal returns the canonical encoding of the block.
func (b *Block) Marshal() ([]byte, error) {
	return marshal(b)
}

// Unmarshal ...
func (b *Block) Unmarshal(data []byte) error {
	b.hash = ""
	return unmarshal(data, b)
}
