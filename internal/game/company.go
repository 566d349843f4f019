package game

// StartingCapacity is the production capacity every company opens with.
// Capacity only ever grows from here.
const StartingCapacity = 1000

// Company holds one entity's standing decisions and balance. Decisions are
// overwritten once per quarter; capacity accumulates.
type Company struct {
	Name       string  `json:"name"`
	Balance    float64 `json:"balance"`
	Price      float64 `json:"price"`
	Production int     `json:"production"`
	Marketing  float64 `json:"marketing"`
	Capacity   float64 `json:"capacity"`
	Research   float64 `json:"research"`
	Donations  float64 `json:"donations"`
}

func NewCompany(name string, initialBalance float64) *Company {
	return &Company{
		Name:     name,
		Balance:  initialBalance,
		Capacity: StartingCapacity,
	}
}

// SetDecisions replaces the quarter's standing decisions. Capacity investment
// is additive: capacity never decreases.
func (c *Company) SetDecisions(d Decisions) {
	c.Price = d.Price
	c.Production = d.Production
	c.Marketing = d.Marketing
	c.Capacity += d.CapacityInvestment
	c.Research = d.Research
	c.Donations = d.Donations
}
