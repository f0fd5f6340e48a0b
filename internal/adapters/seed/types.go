package seed

// seedFile is the YAML layout of a seed. Amounts are strings so that
// decimals never pass through float64.
type seedFile struct {
	Users        []userEntry        `yaml:"users"`
	Treasuries   []treasuryEntry    `yaml:"treasuries"`
	Proposals    []proposalEntry    `yaml:"proposals"`
	Policies     []policyEntry      `yaml:"policies"`
	Transactions []transactionEntry `yaml:"transactions"`
	Expenses     []expenseEntry     `yaml:"expenses"`
}

type userEntry struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
	Role    string `yaml:"role"`
}

type treasuryEntry struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Balance     string   `yaml:"balance"`
	Threshold   int      `yaml:"threshold"`
	Signers     []string `yaml:"signers"`
	CreatedAt   string   `yaml:"created_at"`
	Paused      bool     `yaml:"paused"`
}

type voteEntry struct {
	User      string `yaml:"user"`
	Name      string `yaml:"name"`
	Approved  bool   `yaml:"approved"`
	At        string `yaml:"at"`
	Signature string `yaml:"signature"`
}

type proposalEntry struct {
	ID            string      `yaml:"id"`
	Treasury      string      `yaml:"treasury"`
	Title         string      `yaml:"title"`
	Description   string      `yaml:"description"`
	Amount        string      `yaml:"amount"`
	Recipient     string      `yaml:"recipient"`
	Category      string      `yaml:"category"`
	Status        string      `yaml:"status"`
	CreatedBy     string      `yaml:"created_by"`
	CreatedAt     string      `yaml:"created_at"`
	LockUntil     string      `yaml:"lock_until"`
	ExecutedAt    string      `yaml:"executed_at"`
	RequiredVotes int         `yaml:"required_votes"`
	Votes         []voteEntry `yaml:"votes"`
}

type policyEntry struct {
	ID        string            `yaml:"id"`
	Treasury  string            `yaml:"treasury"`
	Name      string            `yaml:"name"`
	Type      string            `yaml:"type"`
	Enabled   *bool             `yaml:"enabled"`
	CreatedAt string            `yaml:"created_at"`
	Config    map[string]string `yaml:"config"`
}

type transactionEntry struct {
	ID       string `yaml:"id"`
	Treasury string `yaml:"treasury"`
	Proposal string `yaml:"proposal"`
	Type     string `yaml:"type"`
	Amount   string `yaml:"amount"`
	From     string `yaml:"from"`
	To       string `yaml:"to"`
	Status   string `yaml:"status"`
	At       string `yaml:"at"`
	GasUsed  string `yaml:"gas_used"`
	TxHash   string `yaml:"tx_hash"`
}

type expenseEntry struct {
	ID          string `yaml:"id"`
	Amount      string `yaml:"amount"`
	Category    string `yaml:"category"`
	Description string `yaml:"description"`
	Date        string `yaml:"date"`
}
