package fiber

import (
	"time"

	"brand-analytics-service/internal/analytics/core/domain"
	"brand-analytics-service/internal/analytics/core/usecase"
)

// Envelope is the response shape of every analytics endpoint.
// @Description Standard response envelope
type Envelope struct {
	Success    bool                `json:"success"`
	Data       any                 `json:"data,omitempty"`
	Error      *APIError           `json:"error,omitempty"`
	Pagination *PaginationResponse `json:"pagination,omitempty"`
}

type APIError struct {
	Code    string `json:"code" example:"invalid_period"`
	Message string `json:"message" example:"month and year must be concrete for this report"`
}

type PaginationResponse struct {
	CurrentPage    int  `json:"currentPage"`
	TotalPages     int  `json:"totalPages"`
	TotalRecords   int  `json:"totalRecords"`
	RecordsPerPage int  `json:"recordsPerPage"`
	HasNextPage    bool `json:"hasNextPage"`
	HasPrevPage    bool `json:"hasPrevPage"`
}

type UserSummaryResponse struct {
	UserKey          string  `json:"userkey"`
	UniqueCode       string  `json:"uniqueCode"`
	Line             string  `json:"line"`
	DepositCases     int64   `json:"depositCases"`
	DepositAmount    float64 `json:"depositAmount"`
	WithdrawCases    int64   `json:"withdrawCases"`
	WithdrawAmount   float64 `json:"withdrawAmount"`
	NetProfit        float64 `json:"netProfit"`
	Bonus            float64 `json:"bonus"`
	ActiveDays       int     `json:"activeDays"`
	ATV              float64 `json:"atv"`
	PF               float64 `json:"pf"`
	GGR              float64 `json:"ggr"`
	Tier             int     `json:"tier"`
	TierName         string  `json:"tierName"`
	FirstDepositDate *string `json:"firstDepositDate"`
	LastDepositDate  *string `json:"lastDepositDate"`
}

type SummaryKPIsResponse struct {
	ActiveUsers       int     `json:"activeUsers"`
	DepositCases      int64   `json:"depositCases"`
	DepositAmount     float64 `json:"depositAmount"`
	WithdrawCases     int64   `json:"withdrawCases"`
	WithdrawAmount    float64 `json:"withdrawAmount"`
	NetProfit         float64 `json:"netProfit"`
	Bonus             float64 `json:"bonus"`
	GGR               float64 `json:"ggr"`
	ATV               float64 `json:"atv"`
	PurchaseFrequency float64 `json:"purchaseFrequency"`
	WinratePct        float64 `json:"winratePct"`
	WithdrawalRatePct float64 `json:"withdrawalRatePct"`
	HoldPct           float64 `json:"holdPct"`
	ElapsedDays       int     `json:"elapsedDays"`
	DailyAvgDeposit   float64 `json:"dailyAvgDeposit"`
	DailyAvgGGR       float64 `json:"dailyAvgGGR"`
	MoMDepositAmount  float64 `json:"momDepositAmount"`
	MoMGGR            float64 `json:"momGGR"`
	MoMNetProfit      float64 `json:"momNetProfit"`
	MoMActiveUsers    float64 `json:"momActiveUsers"`
}

type SummaryResponse struct {
	Year  int                   `json:"year"`
	Month string                `json:"month"`
	Brand string                `json:"brand,omitempty"`
	KPIs  SummaryKPIsResponse   `json:"kpis"`
	Users []UserSummaryResponse `json:"users"`
}

type LifecycleCountsResponse struct {
	New         int `json:"new"`
	Retained    int `json:"retained"`
	Reactivated int `json:"reactivated"`
	Churned     int `json:"churned"`
}

type ChurnedUserResponse struct {
	UserKey   string `json:"userkey"`
	MemberAge string `json:"memberAge"`
}

type LifecycleResponse struct {
	Year        int                     `json:"year"`
	Month       string                  `json:"month"`
	PrevYear    int                     `json:"prevYear"`
	PrevMonth   string                  `json:"prevMonth"`
	Brand       string                  `json:"brand,omitempty"`
	Counts      LifecycleCountsResponse `json:"counts"`
	New         []string                `json:"new"`
	Retained    []string                `json:"retained"`
	Reactivated []string                `json:"reactivated"`
	Churned     []ChurnedUserResponse   `json:"churned"`
}

type MovementRecordResponse struct {
	UserKey    string `json:"userkey"`
	FromTier   int    `json:"fromTier,omitempty"`
	ToTier     int    `json:"toTier,omitempty"`
	Type       string `json:"movementType"`
	TierChange int    `json:"tierChange"`
}

type MovementSummaryResponse struct {
	GrandTotal int   `json:"grandTotal"`
	TotalIn    []int `json:"totalIn"`
	TotalOut   []int `json:"totalOut"`
	Upgraded   int   `json:"upgraded"`
	Downgraded int   `json:"downgraded"`
	Stable     int   `json:"stable"`
	New        int   `json:"new"`
	Churned    int   `json:"churned"`
}

type MovementResponse struct {
	Brand         string                   `json:"brand,omitempty"`
	Movements     []MovementRecordResponse `json:"movements"`
	Matrix        [][]int                  `json:"matrix"`
	Summary       MovementSummaryResponse  `json:"summary"`
	TopUpgrades   []MovementRecordResponse `json:"topUpgrades"`
	TopDowngrades []MovementRecordResponse `json:"topDowngrades"`
}

const dateLayout = "2006-01-02"

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func toUserSummaryResponse(s *domain.UserCohortSummary) UserSummaryResponse {
	return UserSummaryResponse{
		UserKey:          s.UserKey,
		UniqueCode:       s.UniqueCode,
		Line:             s.Line,
		DepositCases:     s.DepositCases,
		DepositAmount:    s.DepositAmount,
		WithdrawCases:    s.WithdrawCases,
		WithdrawAmount:   s.WithdrawAmount,
		NetProfit:        s.NetProfit,
		Bonus:            s.Bonus,
		ActiveDays:       s.ActiveDays,
		ATV:              domain.ATV(s.DepositAmount, s.DepositCases),
		PF:               domain.PurchaseFrequency(s.DepositCases, s.ActiveDays),
		GGR:              domain.GGR(s.DepositAmount, s.WithdrawAmount),
		Tier:             s.Tier,
		TierName:         domain.TierName(s.Tier),
		FirstDepositDate: formatDate(s.FirstDepositDate),
		LastDepositDate:  formatDate(s.LastDepositDate),
	}
}

func toSummaryResponse(res *usecase.SummaryResult) SummaryResponse {
	users := make([]UserSummaryResponse, 0, len(res.Users))
	for _, s := range res.Users {
		users = append(users, toUserSummaryResponse(s))
	}
	return SummaryResponse{
		Year:  res.Year,
		Month: res.Month.Name(),
		Brand: res.Brand,
		KPIs: SummaryKPIsResponse{
			ActiveUsers:       res.KPIs.ActiveUsers,
			DepositCases:      res.KPIs.DepositCases,
			DepositAmount:     res.KPIs.DepositAmount,
			WithdrawCases:     res.KPIs.WithdrawCases,
			WithdrawAmount:    res.KPIs.WithdrawAmount,
			NetProfit:         res.KPIs.NetProfit,
			Bonus:             res.KPIs.Bonus,
			GGR:               res.KPIs.GGR,
			ATV:               res.KPIs.ATV,
			PurchaseFrequency: res.KPIs.PurchaseFrequency,
			WinratePct:        res.KPIs.WinratePct,
			WithdrawalRatePct: res.KPIs.WithdrawalRatePct,
			HoldPct:           res.KPIs.HoldPct,
			ElapsedDays:       res.KPIs.ElapsedDays,
			DailyAvgDeposit:   res.KPIs.DailyAvgDeposit,
			DailyAvgGGR:       res.KPIs.DailyAvgGGR,
			MoMDepositAmount:  res.KPIs.MoMDepositAmount,
			MoMGGR:            res.KPIs.MoMGGR,
			MoMNetProfit:      res.KPIs.MoMNetProfit,
			MoMActiveUsers:    res.KPIs.MoMActiveUsers,
		},
		Users: users,
	}
}

func toLifecycleResponse(res *usecase.LifecycleResult) LifecycleResponse {
	churned := make([]ChurnedUserResponse, 0, len(res.Churned))
	for _, c := range res.Churned {
		churned = append(churned, ChurnedUserResponse{
			UserKey:   c.UserKey,
			MemberAge: string(c.MemberAge),
		})
	}
	return LifecycleResponse{
		Year:        res.Year,
		Month:       res.Month.Name(),
		PrevYear:    res.PrevYear,
		PrevMonth:   res.PrevMonth.Name(),
		Brand:       res.Brand,
		Counts: LifecycleCountsResponse{
			New:         res.Counts.New,
			Retained:    res.Counts.Retained,
			Reactivated: res.Counts.Reactivated,
			Churned:     res.Counts.Churned,
		},
		New:         res.New,
		Retained:    res.Retained,
		Reactivated: res.Reactivated,
		Churned:     churned,
	}
}

func toMovementRecords(records []domain.MovementRecord) []MovementRecordResponse {
	out := make([]MovementRecordResponse, 0, len(records))
	for _, m := range records {
		out = append(out, MovementRecordResponse{
			UserKey:    m.UserKey,
			FromTier:   m.FromTier,
			ToTier:     m.ToTier,
			Type:       string(m.Type),
			TierChange: m.TierChange,
		})
	}
	return out
}

func toMovementResponse(res *usecase.MovementOutput) MovementResponse {
	matrix := make([][]int, len(res.Matrix.Cells))
	for i := range res.Matrix.Cells {
		row := make([]int, len(res.Matrix.Cells[i]))
		copy(row, res.Matrix.Cells[i][:])
		matrix[i] = row
	}
	return MovementResponse{
		Brand:     res.Brand,
		Movements: toMovementRecords(res.Movements),
		Matrix:    matrix,
		Summary: MovementSummaryResponse{
			GrandTotal: res.Summary.GrandTotal,
			TotalIn:    res.Summary.TotalIn[:],
			TotalOut:   res.Summary.TotalOut[:],
			Upgraded:   res.Summary.Upgraded,
			Downgraded: res.Summary.Downgraded,
			Stable:     res.Summary.Stable,
			New:        res.Summary.New,
			Churned:    res.Summary.Churned,
		},
		TopUpgrades:   toMovementRecords(res.TopUpgrades),
		TopDowngrades: toMovementRecords(res.TopDowngrades),
	}
}

func toPaginationResponse(p usecase.Pagination) *PaginationResponse {
	return &PaginationResponse{
		CurrentPage:    p.CurrentPage,
		TotalPages:     p.TotalPages,
		TotalRecords:   p.TotalRecords,
		RecordsPerPage: p.RecordsPerPage,
		HasNextPage:    p.HasNextPage,
		HasPrevPage:    p.HasPrevPage,
	}
}
