package customer

import (
	"time"

	estdomain "github.com/fluepoint/service-crm/internal/domain/estimate"
	jobdomain "github.com/fluepoint/service-crm/internal/domain/job"
	"github.com/fluepoint/service-crm/internal/models"
)

// ======================================================
// OUTPUT SHAPE
//
// Key names below are a wire contract with the frontend;
// renaming any of them is a breaking change.
// ======================================================

type JobView struct {
	ID            uint       `json:"id"`
	Title         string     `json:"title"`
	Status        string     `json:"status"`
	TotalCost     float64    `json:"total_cost"`
	ScheduledDate *time.Time `json:"scheduled_date"`
	CompletedAt   *time.Time `json:"completed_at"`
}

type AppointmentView struct {
	ID         uint      `json:"id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Status     string    `json:"status"`
	IsUpcoming bool      `json:"is_upcoming"`
}

type EstimateView struct {
	ID          uint       `json:"id"`
	Reference   string     `json:"reference"`
	Title       string     `json:"title"`
	Status      string     `json:"status"`
	TotalAmount float64    `json:"total_amount"`
	ValidUntil  *time.Time `json:"valid_until"`
	IsExpired   bool       `json:"is_expired"`
}

type ServiceLineView struct {
	ID         uint     `json:"id"`
	JobID      uint     `json:"job_id"`
	ServiceID  *uint    `json:"service_id"`
	TotalPrice float64  `json:"total_price"`
	Hours      *float64 `json:"hours_worked"`
}

type UniqueServiceView struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

type JobsBreakdown struct {
	HasJobs         bool           `json:"has_jobs"`
	TotalCount      int            `json:"total_count"`
	Jobs            []JobView      `json:"jobs"`
	StatusBreakdown map[string]int `json:"status_breakdown"`
	TotalValue      float64        `json:"total_value"`
}

type AppointmentsBreakdown struct {
	HasAppointments bool              `json:"has_appointments"`
	TotalCount      int               `json:"total_count"`
	Appointments    []AppointmentView `json:"appointments"`
	StatusBreakdown map[string]int    `json:"status_breakdown"`
	UpcomingCount   int               `json:"upcoming_count"`
}

type EstimatesBreakdown struct {
	HasEstimates    bool           `json:"has_estimates"`
	TotalCount      int            `json:"total_count"`
	Estimates       []EstimateView `json:"estimates"`
	StatusBreakdown map[string]int `json:"status_breakdown"`
	TotalValue      float64        `json:"total_value"`
	PendingValue    float64        `json:"pending_value"`
}

type ServicesBreakdown struct {
	HasServices    bool                `json:"has_services"`
	TotalCount     int                 `json:"total_count"`
	Services       []ServiceLineView   `json:"services"`
	UniqueServices []UniqueServiceView `json:"unique_services"`
}

type Summary struct {
	TotalJobs     int `json:"total_jobs"`
	ActiveJobs    int `json:"active_jobs"`
	CompletedJobs int `json:"completed_jobs"`

	TotalAppointments    int `json:"total_appointments"`
	UpcomingAppointments int `json:"upcoming_appointments"`

	TotalEstimates    int `json:"total_estimates"`
	PendingEstimates  int `json:"pending_estimates"`
	AcceptedEstimates int `json:"accepted_estimates"`

	TotalJobValue        float64 `json:"total_job_value"`
	TotalEstimateValue   float64 `json:"total_estimate_value"`
	PendingEstimateValue float64 `json:"pending_estimate_value"`

	LastActivity  time.Time `json:"last_activity"`
	CustomerSince time.Time `json:"customer_since"`
}

type RelatedData struct {
	Jobs         JobsBreakdown         `json:"jobs"`
	Appointments AppointmentsBreakdown `json:"appointments"`
	Estimates    EstimatesBreakdown    `json:"estimates"`
	Services     ServicesBreakdown     `json:"services"`
	Summary      Summary               `json:"summary"`
}

type Bundle struct {
	Customer    models.Customer `json:"customer"`
	RelatedData RelatedData     `json:"related_data"`
}

// ======================================================
// ENRICHMENT
// ======================================================

// Enrich computes the breakdown bundle for one customer. It is a pure
// function over the already-loaded relations: it never touches the data
// store, and all time-dependent flags derive from the caller's now.
func Enrich(c *models.Customer, now time.Time) RelatedData {
	return RelatedData{
		Jobs:         enrichJobs(c.Jobs),
		Appointments: enrichAppointments(c.Appointments, now),
		Estimates:    enrichEstimates(c.Estimates, now),
		Services:     enrichServices(c.Jobs),
		Summary:      buildSummary(c, now),
	}
}

// EnrichAll applies Enrich to every customer, preserving input order.
func EnrichAll(customers []models.Customer, now time.Time) []Bundle {
	bundles := make([]Bundle, 0, len(customers))
	for i := range customers {
		bundles = append(bundles, Bundle{
			Customer:    customers[i],
			RelatedData: Enrich(&customers[i], now),
		})
	}
	return bundles
}

// ------------------------------------------------------
// Per-category breakdowns
// ------------------------------------------------------

func enrichJobs(jobs []models.Job) JobsBreakdown {
	views := make([]JobView, 0, len(jobs))
	breakdown := make(map[string]int)
	var totalValue float64

	for i := range jobs {
		j := &jobs[i]
		views = append(views, JobView{
			ID:            j.ID,
			Title:         j.Title,
			Status:        j.Status,
			TotalCost:     j.TotalCost(),
			ScheduledDate: j.ScheduledDate,
			CompletedAt:   j.CompletedAt,
		})
		breakdown[j.Status]++
		totalValue += j.TotalCost()
	}

	return JobsBreakdown{
		HasJobs:         len(jobs) > 0,
		TotalCount:      len(jobs),
		Jobs:            views,
		StatusBreakdown: breakdown,
		TotalValue:      totalValue,
	}
}

func enrichAppointments(aps []models.Appointment, now time.Time) AppointmentsBreakdown {
	views := make([]AppointmentView, 0, len(aps))
	breakdown := make(map[string]int)
	upcoming := 0

	for i := range aps {
		ap := &aps[i]
		isUpcoming := ap.StartTime.After(now)
		views = append(views, AppointmentView{
			ID:         ap.ID,
			StartTime:  ap.StartTime,
			EndTime:    ap.EndTime,
			Status:     ap.Status,
			IsUpcoming: isUpcoming,
		})
		breakdown[ap.Status]++
		// upcoming counts by start time alone, independent of status
		if isUpcoming {
			upcoming++
		}
	}

	return AppointmentsBreakdown{
		HasAppointments: len(aps) > 0,
		TotalCount:      len(aps),
		Appointments:    views,
		StatusBreakdown: breakdown,
		UpcomingCount:   upcoming,
	}
}

func enrichEstimates(ests []models.Estimate, now time.Time) EstimatesBreakdown {
	views := make([]EstimateView, 0, len(ests))
	breakdown := make(map[string]int)
	var totalValue, pendingValue float64

	for i := range ests {
		e := &ests[i]
		views = append(views, EstimateView{
			ID:          e.ID,
			Reference:   e.Reference,
			Title:       e.Title,
			Status:      e.Status,
			TotalAmount: e.TotalAmount(),
			ValidUntil:  e.ValidUntil,
			IsExpired:   estdomain.IsExpired(e, now),
		})
		breakdown[e.Status]++
		totalValue += e.TotalAmount()
		if estdomain.IsPending(estdomain.Status(e.Status)) {
			pendingValue += e.TotalAmount()
		}
	}

	return EstimatesBreakdown{
		HasEstimates:    len(ests) > 0,
		TotalCount:      len(ests),
		Estimates:       views,
		StatusBreakdown: breakdown,
		TotalValue:      totalValue,
		PendingValue:    pendingValue,
	}
}

// enrichServices flattens job lines across every job and de-duplicates the
// underlying catalog services by id.
func enrichServices(jobs []models.Job) ServicesBreakdown {
	lines := make([]ServiceLineView, 0)
	unique := make([]UniqueServiceView, 0)
	seen := make(map[uint]bool)

	for i := range jobs {
		for k := range jobs[i].JobServices {
			js := &jobs[i].JobServices[k]
			lines = append(lines, ServiceLineView{
				ID:         js.ID,
				JobID:      js.JobID,
				ServiceID:  js.ServiceID,
				TotalPrice: js.TotalPrice(),
				Hours:      js.HoursWorked,
			})

			if js.Service == nil || seen[js.Service.ID] {
				continue
			}
			seen[js.Service.ID] = true
			unique = append(unique, UniqueServiceView{
				ID:          js.Service.ID,
				Name:        js.Service.Name,
				Description: js.Service.Description,
				Price:       js.Service.BasePrice,
			})
		}
	}

	return ServicesBreakdown{
		HasServices:    len(lines) > 0,
		TotalCount:     len(lines),
		Services:       lines,
		UniqueServices: unique,
	}
}

// ------------------------------------------------------
// Summary rollup
// ------------------------------------------------------

func buildSummary(c *models.Customer, now time.Time) Summary {
	s := Summary{
		TotalJobs:         len(c.Jobs),
		TotalAppointments: len(c.Appointments),
		TotalEstimates:    len(c.Estimates),
		LastActivity:      c.UpdatedAt,
		CustomerSince:     c.CreatedAt,
	}

	for i := range c.Jobs {
		j := &c.Jobs[i]
		if jobdomain.IsActive(jobdomain.Status(j.Status)) {
			s.ActiveJobs++
		}
		if j.Status == string(jobdomain.StatusCompleted) {
			s.CompletedJobs++
		}
		s.TotalJobValue += j.TotalCost()
		if j.UpdatedAt.After(s.LastActivity) {
			s.LastActivity = j.UpdatedAt
		}
	}

	for i := range c.Appointments {
		ap := &c.Appointments[i]
		if ap.StartTime.After(now) {
			s.UpcomingAppointments++
		}
		if ap.UpdatedAt.After(s.LastActivity) {
			s.LastActivity = ap.UpdatedAt
		}
	}

	for i := range c.Estimates {
		e := &c.Estimates[i]
		if estdomain.IsPending(estdomain.Status(e.Status)) {
			s.PendingEstimates++
			s.PendingEstimateValue += e.TotalAmount()
		}
		if e.Status == string(estdomain.StatusAccepted) {
			s.AcceptedEstimates++
		}
		s.TotalEstimateValue += e.TotalAmount()
		if e.UpdatedAt.After(s.LastActivity) {
			s.LastActivity = e.UpdatedAt
		}
	}

	return s
}
