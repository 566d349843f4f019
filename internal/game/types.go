package game

import "errors"

var (
	ErrInvalidDecisions     = errors.New("invalid decisions")
	ErrGameNotFound         = errors.New("game not found")
	ErrDuplicateIdempotency = errors.New("duplicate idempotency key")
	ErrNoQuartersPlayed     = errors.New("no quarters played yet")
)

// Decisions is one quarter's worth of player input. All fields must be
// non-negative; Validate rejects anything else before state is touched.
type Decisions struct {
	Price              float64 `json:"price"`
	Production         int     `json:"production"`
	Marketing          float64 `json:"marketing"`
	CapacityInvestment float64 `json:"capacity_investment"`
	Research           float64 `json:"research"`
	Donations          float64 `json:"donations"`
}

func (d Decisions) Validate() error {
	switch {
	case d.Price < 0:
		return errors.Join(ErrInvalidDecisions, errors.New("price must be >= 0"))
	case d.Production < 0:
		return errors.Join(ErrInvalidDecisions, errors.New("production must be >= 0"))
	case d.Marketing < 0:
		return errors.Join(ErrInvalidDecisions, errors.New("marketing must be >= 0"))
	case d.CapacityInvestment < 0:
		return errors.Join(ErrInvalidDecisions, errors.New("capacity_investment must be >= 0"))
	case d.Research < 0:
		return errors.Join(ErrInvalidDecisions, errors.New("research must be >= 0"))
	case d.Donations < 0:
		return errors.Join(ErrInvalidDecisions, errors.New("donations must be >= 0"))
	}
	return nil
}

// QuarterResult is the immutable record of one simulated quarter. Appended
// to history and never touched again; report deltas read from here.
type QuarterResult struct {
	Quarter           int             `json:"quarter"`
	MarketCondition   MarketCondition `json:"market_condition"`
	TotalMarketDemand int             `json:"total_market_demand"`
	PlayerDemand      int             `json:"player_demand"`
	Revenue           float64         `json:"revenue"`
	ProductionCost    float64         `json:"production_cost"`
	TotalCosts        float64         `json:"total_costs"`
	Profit            float64         `json:"profit"`
	Balance           float64         `json:"balance"`
	MarketShare       float64         `json:"market_share"`

	// Echoed decision inputs.
	Price              float64 `json:"price"`
	Production         int     `json:"production"`
	Marketing          float64 `json:"marketing"`
	CapacityInvestment float64 `json:"capacity_investment"`
	Capacity           float64 `json:"capacity"`
	Research           float64 `json:"research"`
	Donations          float64 `json:"donations"`
}

// FinancialReport summarizes the latest quarter with period-over-period
// changes. Change fields are formatted strings because a zero base has no
// numeric percentage: "N/A" for zero-to-zero, the infinity sign otherwise.
type FinancialReport struct {
	Revenue     float64 `json:"revenue"`
	Costs       float64 `json:"costs"`
	Profit      float64 `json:"profit"`
	Balance     float64 `json:"balance"`
	MarketShare string  `json:"market_share"`
	Capacity    float64 `json:"capacity"`
	Demand      int     `json:"demand"`
	Production  int     `json:"production"`
	Sales       int     `json:"sales"`

	RevenueChange     string `json:"revenue_change,omitempty"`
	ProfitChange      string `json:"profit_change,omitempty"`
	MarketShareChange string `json:"market_share_change,omitempty"`
}

type MarketReport struct {
	MarketCondition   MarketCondition `json:"market_condition"`
	TotalMarketDemand int             `json:"total_market_demand"`
	PlayerDemand      int             `json:"player_demand"`
	PlayerPrice       float64         `json:"player_price"`
	MarketShare       string          `json:"market_share"`
}

// Snapshot is the lightweight view of a running game returned by the API.
type Snapshot struct {
	GameID          string          `json:"game_id"`
	CompanyName     string          `json:"company_name"`
	Quarter         int             `json:"quarter"`
	Balance         float64         `json:"balance"`
	Capacity        float64         `json:"capacity"`
	MarketShare     float64         `json:"market_share"`
	MarketCondition MarketCondition `json:"market_condition"`
	BaseDemand      int             `json:"base_demand"`
	QuartersPlayed  int             `json:"quarters_played"`
}
