package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"time"

	"github.com/kingxjullien14/nkp-ems/internal/attendance"
	"github.com/kingxjullien14/nkp-ems/internal/events"
	"github.com/kingxjullien14/nkp-ems/internal/messaging/kafka"
	payrollerrors "github.com/kingxjullien14/nkp-ems/internal/payroll/errors"
	"github.com/kingxjullien14/nkp-ems/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	listCacheKey = "payroll:list"
	listCacheTTL = 5 * time.Minute
)

type Service interface {
	Run(ctx context.Context, adminCode string, req RunPayrollRequest) (RunPayrollResponse, error)
	GetAll(ctx context.Context) ([]SalaryResponse, error)
	GetByEmployee(ctx context.Context, empCode string) ([]SalaryResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	sf     singleflight.Group
	loc    *time.Location
	logger *zap.Logger
	now    func() time.Time
}

func NewService(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		rdb:    rdb,
		loc:    payrollLocation(l),
		logger: l,
		now:    time.Now,
	}
}

// payrollLocation resolves the zone punches are interpreted in. Bad
// values fall back to UTC rather than failing startup.
func payrollLocation(logger *zap.Logger) *time.Location {
	name := os.Getenv("PAYROLL_TIMEZONE")
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		logger.Warn("invalid PAYROLL_TIMEZONE, falling back to UTC", zap.String("value", name), zap.Error(err))
		return time.UTC
	}
	return loc
}

// Run rebuilds salary rows from the punch ledger. Periods that already
// carry rows are refused unless the caller asks for regeneration, in
// which case the affected periods are replaced inside the same
// transaction that inserts the new rows.
func (s *service) Run(ctx context.Context, adminCode string, req RunPayrollRequest) (RunPayrollResponse, error) {
	s.logger.Debug("run payroll requested",
		zap.String("admin_code", adminCode),
		zap.Bool("regenerate", req.Regenerate),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("run payroll begin tx failed", zap.Error(err))
		return RunPayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	punches, err := qtx.LoadPunchRows(ctx)
	if err != nil {
		s.logger.Error("run payroll load punches failed", zap.Error(err))
		return RunPayrollResponse{}, err
	}
	if len(punches) == 0 {
		return RunPayrollResponse{}, payrollerrors.ErrNoPunchData
	}

	totals, warnings, err := aggregate(punches, s.loc)
	if err != nil {
		return RunPayrollResponse{}, err
	}
	for _, w := range warnings {
		s.logger.Warn("run payroll skipped punch", zap.String("detail", w))
	}

	periods := make([]string, 0, len(totals))
	seen := map[string]bool{}
	for _, t := range totals {
		if !seen[t.period] {
			seen[t.period] = true
			periods = append(periods, t.period)
		}
	}

	existing, err := qtx.ExistingPeriods(ctx, periods)
	if err != nil {
		return RunPayrollResponse{}, err
	}
	if len(existing) > 0 {
		if !req.Regenerate {
			s.logger.Warn("run payroll conflict", zap.Strings("periods", existing))
			return RunPayrollResponse{}, payrollerrors.ErrPeriodAlreadyGenerated
		}
		if err := qtx.DeleteByPeriods(ctx, existing); err != nil {
			s.logger.Error("run payroll replace failed", zap.Error(err))
			return RunPayrollResponse{}, err
		}
	}

	generatedAt := s.now().UTC()
	salaries := make([]Salary, 0, len(totals))
	empCodes := make([]string, 0, len(totals))
	seenEmp := map[string]bool{}
	for _, t := range totals {
		salaries = append(salaries, Salary{
			ID:           uuid.New(),
			EmpCode:      t.empCode,
			NetSalary:    t.amount,
			SalaryMonth:  t.period,
			GenerateDate: generatedAt,
		})
		if !seenEmp[t.empCode] {
			seenEmp[t.empCode] = true
			empCodes = append(empCodes, t.empCode)
		}
	}

	if err := qtx.InsertSalaries(ctx, salaries); err != nil {
		s.logger.Error("run payroll insert failed", zap.Error(err))
		return RunPayrollResponse{}, err
	}

	if s.outbox != nil {
		rid := contextutil.GetRequestID(ctx)
		event := events.PayrollGeneratedEvent{
			EventType:   "payroll_generated",
			RequestID:   rid,
			GeneratedBy: adminCode,
			Periods:     periods,
			EmpCodes:    empCodes,
			OccurredAt:  generatedAt,
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return RunPayrollResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "payroll",
			AggregateID:   generatedAt.Format("2006-01-02T15:04:05Z"),
			EventType:     event.EventType,
			Topic:         events.PayrollGeneratedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("run payroll outbox persist failed", zap.Error(err))
			return RunPayrollResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("run payroll commit failed", zap.Error(err))
		return RunPayrollResponse{}, err
	}

	s.invalidateListCache(ctx)

	s.logger.Info("run payroll success",
		zap.Int("rows", len(salaries)),
		zap.Strings("periods", periods),
		zap.Int("warnings", len(warnings)),
	)

	return RunPayrollResponse{
		Generated: mapToListResponse(salaries),
		Warnings:  warnings,
	}, nil
}

type periodTotal struct {
	empCode string
	period  string // YYYY-MM
	amount  float64
}

// aggregate pairs each punch-in with the next punch-out of the same
// employee and day, prices the span at the employee's hourly rate, and
// sums per calendar month. Unmatched punches contribute zero pay and a
// warning instead of failing the whole run.
func aggregate(punches []PunchRow, loc *time.Location) ([]periodTotal, []string, error) {
	sums := map[string]float64{}
	keys := []string{}
	var warnings []string

	var (
		openIn  *time.Time
		curEmp  string
		curDay  string
		curRate float64
	)

	flushOpen := func() {
		if openIn != nil {
			warnings = append(warnings, fmt.Sprintf("unmatched %s for %s on %s", attendance.ActionPunchIn, curEmp, curDay))
			openIn = nil
		}
	}

	for _, p := range punches {
		day := p.AttendanceDate.Format("2006-01-02")
		if p.EmpCode != curEmp || day != curDay {
			flushOpen()
			curEmp, curDay, curRate = p.EmpCode, day, p.HourlyRate
		}

		at, err := combine(p.AttendanceDate, p.ActionTime, loc)
		if err != nil {
			return nil, nil, payrollerrors.ErrCorruptPunchTime
		}

		switch p.ActionName {
		case attendance.ActionPunchIn:
			// a second punch-in orphans the first
			flushOpen()
			t := at
			openIn = &t
		case attendance.ActionPunchOut:
			if openIn == nil {
				warnings = append(warnings, fmt.Sprintf("unmatched %s for %s on %s", attendance.ActionPunchOut, p.EmpCode, day))
				continue
			}
			seconds := at.Sub(*openIn).Seconds()
			openIn = nil
			if seconds < 0 {
				warnings = append(warnings, fmt.Sprintf("negative span for %s on %s", p.EmpCode, day))
				continue
			}
			period := p.AttendanceDate.Format("2006-01")
			key := p.EmpCode + "|" + period
			if _, ok := sums[key]; !ok {
				keys = append(keys, key)
			}
			sums[key] += seconds / 3600 * curRate
		default:
			warnings = append(warnings, fmt.Sprintf("unknown action %q for %s on %s", p.ActionName, p.EmpCode, day))
		}
	}
	flushOpen()

	totals := make([]periodTotal, 0, len(keys))
	for _, key := range keys {
		empCode, period := splitKey(key)
		totals = append(totals, periodTotal{
			empCode: empCode,
			period:  period,
			amount:  math.Round(sums[key]*100) / 100,
		})
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].empCode != totals[j].empCode {
			return totals[i].empCode < totals[j].empCode
		}
		return totals[i].period < totals[j].period
	})
	return totals, warnings, nil
}

func splitKey(key string) (string, string) {
	for i := len(key) - 1; i >= 0; i-- {
		if key[i] == '|' {
			return key[:i], key[i+1:]
		}
	}
	return key, ""
}

func combine(date time.Time, clock string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse("15:04:05", clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc), nil
}

func (s *service) GetAll(ctx context.Context) ([]SalaryResponse, error) {
	if s.rdb == nil {
		rows, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		return mapToListResponse(rows), nil
	}

	// singleflight collapses concurrent misses into one DB read
	v, err, _ := s.sf.Do(listCacheKey, func() (interface{}, error) {
		cached, err := s.rdb.Get(ctx, listCacheKey).Bytes()
		if err == nil {
			var resp []SalaryResponse
			if err := json.Unmarshal(cached, &resp); err == nil {
				return resp, nil
			}
		}

		rows, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		resp := mapToListResponse(rows)

		if payload, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, listCacheKey, payload, listCacheTTL).Err(); err != nil {
				s.logger.Warn("payroll list cache write failed", zap.Error(err))
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]SalaryResponse), nil
}

func (s *service) GetByEmployee(ctx context.Context, empCode string) ([]SalaryResponse, error) {
	rows, err := s.repo.FindByEmployee(ctx, empCode)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) invalidateListCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, listCacheKey).Err(); err != nil {
		s.logger.Warn("payroll list cache invalidation failed", zap.Error(err))
	}
}

func mapToResponse(row Salary) SalaryResponse {
	return SalaryResponse{
		ID:           row.ID.String(),
		EmpCode:      row.EmpCode,
		NetSalary:    row.NetSalary,
		SalaryMonth:  row.SalaryMonth,
		GenerateDate: row.GenerateDate.Format(time.RFC3339),
	}
}

func mapToListResponse(rows []Salary) []SalaryResponse {
	resp := make([]SalaryResponse, len(rows))
	for i, row := range rows {
		resp[i] = mapToResponse(row)
	}
	return resp
}
