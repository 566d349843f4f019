package ledger

// Account names used by the quarter engine. The ledger itself accepts any
// account string; balances for accounts never posted to resolve to zero.
const (
	AccountCash              = "Cash"
	AccountCapital           = "Capital"
	AccountSales             = "Sales"
	AccountCOGS              = "COGS"
	AccountMarketing         = "Marketing"
	AccountRD                = "R&D"
	AccountDonations         = "Donations"
	AccountInventory         = "Inventory"
	AccountCapitalInvestment = "Capital Investment"
	AccountLoans             = "Loans"
	AccountRetainedEarnings  = "Retained Earnings"
)

// Transaction is a single dated ledger entry. Once appended it is never
// mutated or removed.
type Transaction struct {
	Period      string  `json:"period"`
	Account     string  `json:"account"`
	Debit       float64 `json:"debit"`
	Credit      float64 `json:"credit"`
	Description string  `json:"description"`
}

// Ledger is an append-only journal. Insertion order is chronological order,
// which matters for the beginning-cash lookup in the cash flow statement.
// It deliberately does not validate that debits and credits balance across
// a posting pair; callers own that discipline.
type Ledger struct {
	entries []Transaction
}

func New() *Ledger {
	return &Ledger{}
}

// Open posts the opening books: a Cash debit and a matching Capital credit.
// The first Cash debit is what the cash flow statement treats as beginning
// cash, so Open should run before any trading periods.
func Open(openingBalance float64) *Ledger {
	l := New()
	l.Record("Initial", AccountCash, openingBalance, 0, "Initial cash balance")
	l.Record("Initial", AccountCapital, 0, openingBalance, "Initial capital")
	return l
}

func (l *Ledger) Record(period, account string, debit, credit float64, description string) {
	l.entries = append(l.entries, Transaction{
		Period:      period,
		Account:     account,
		Debit:       debit,
		Credit:      credit,
		Description: description,
	})
}

// AccountBalance returns sum(debits) - sum(credits) for the exact account
// name. An account with no transactions balances to zero; mistyped account
// names are indistinguishable from empty ones.
func (l *Ledger) AccountBalance(account string) float64 {
	var balance float64
	for _, t := range l.entries {
		if t.Account == account {
			balance += t.Debit - t.Credit
		}
	}
	return balance
}

// BeginningCash is the debit amount of the first Cash transaction in journal
// order, assumed to be the opening balance.
func (l *Ledger) BeginningCash() float64 {
	for _, t := range l.entries {
		if t.Account == AccountCash {
			return t.Debit
		}
	}
	return 0
}

// Transactions returns a copy of the journal in insertion order.
func (l *Ledger) Transactions() []Transaction {
	out := make([]Transaction, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *Ledger) Len() int {
	return len(l.entries)
}
