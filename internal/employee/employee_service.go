package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	employeeerrors "github.com/kingxjullien14/nkp-ems/internal/employee/errors"
	"github.com/kingxjullien14/nkp-ems/internal/events"
	"github.com/kingxjullien14/nkp-ems/internal/messaging/kafka"
	"github.com/kingxjullien14/nkp-ems/internal/shared/contextutil"
	"github.com/kingxjullien14/nkp-ems/internal/shared/counter"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByCode(ctx context.Context, empCode string) (EmployeeResponse, error)
	Update(ctx context.Context, empCode string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, empCode string) error
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	outbox  kafka.OutboxRepository
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counter counter.Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, counter, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	counter counter.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counter,
		outbox:  outboxRepo,
		logger:  l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("emp_code", req.EmpCode),
		zap.String("email", req.Email),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if req.EmpCode == "" {
		nextVal, err := s.counter.GetNextValue(ctx, "emp_code")
		if err != nil {
			s.logger.Error("create employee generate code failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
		req.EmpCode = fmt.Sprintf("EMP-%06d", nextVal)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return EmployeeResponse{}, err
	}

	empl := &Employee{
		EmpCode:  req.EmpCode,
		Password: string(hashed),
	}
	if err := applyFields(empl, employeeFields{
		FullName: req.FullName, DOB: req.DOB, Gender: req.Gender,
		Nationality: req.Nationality, Address: req.Address,
		PhoneNumber: req.PhoneNumber, Email: req.Email,
		PassportNumber: req.PassportNumber, PassportCountry: req.PassportCountry,
		PassportIssueDate: req.PassportIssueDate, PassportExpiryDate: req.PassportExpiryDate,
		VisaType: req.VisaType, VisaNumber: req.VisaNumber,
		VisaIssueDate: req.VisaIssueDate, VisaExpiryDate: req.VisaExpiryDate,
		VisaStatus: req.VisaStatus,
		PermitType: req.PermitType, PermitNumber: req.PermitNumber,
		PermitIssueDate: req.PermitIssueDate, PermitExpiryDate: req.PermitExpiryDate,
		HourlyRate: req.HourlyRate,
	}); err != nil {
		s.logger.Warn("create employee validation failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.EmployeeCreatedEvent{
			EventType:  "employee_created",
			RequestID:  rid,
			EmpCode:    empl.EmpCode,
			FullName:   empl.FullName,
			OccurredAt: time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return EmployeeResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "employee",
			AggregateID:   empl.EmpCode,
			EventType:     event.EventType,
			Topic:         events.EmployeeCreatedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("create employee outbox persist failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	s.logger.Info("create employee success", zap.String("emp_code", empl.EmpCode))

	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	empls, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(empls), nil
}

func (s *service) GetByCode(ctx context.Context, empCode string) (EmployeeResponse, error) {
	empl, err := s.repo.FindByCode(ctx, empCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}
	return mapToResponse(*empl), nil
}

// Update replaces every mutable field in a single transaction. Any failure
// leaves the stored record untouched.
func (s *service) Update(ctx context.Context, empCode string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	s.logger.Debug("update employee requested", zap.String("emp_code", empCode))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByCode(ctx, empCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}

	if err := applyFields(empl, employeeFields{
		FullName: req.FullName, DOB: req.DOB, Gender: req.Gender,
		Nationality: req.Nationality, Address: req.Address,
		PhoneNumber: req.PhoneNumber, Email: req.Email,
		PassportNumber: req.PassportNumber, PassportCountry: req.PassportCountry,
		PassportIssueDate: req.PassportIssueDate, PassportExpiryDate: req.PassportExpiryDate,
		VisaType: req.VisaType, VisaNumber: req.VisaNumber,
		VisaIssueDate: req.VisaIssueDate, VisaExpiryDate: req.VisaExpiryDate,
		VisaStatus: req.VisaStatus,
		PermitType: req.PermitType, PermitNumber: req.PermitNumber,
		PermitIssueDate: req.PermitIssueDate, PermitExpiryDate: req.PermitExpiryDate,
		HourlyRate: req.HourlyRate,
	}); err != nil {
		s.logger.Warn("update employee validation failed",
			zap.String("emp_code", empCode),
			zap.Error(err),
		)
		return EmployeeResponse{}, err
	}

	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return EmployeeResponse{}, err
		}
		empl.Password = string(hashed)
	}

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed",
			zap.String("emp_code", empCode),
			zap.Error(err),
		)
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	s.logger.Info("update employee success", zap.String("emp_code", empCode))

	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, empCode string) error {
	s.logger.Debug("delete employee requested", zap.String("emp_code", empCode))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByCode(ctx, empCode); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return employeeerrors.ErrEmployeeNotFound
		}
		return err
	}

	dependents, err := qtx.CountDependents(ctx, empCode)
	if err != nil {
		return err
	}
	if dependents > 0 {
		s.logger.Warn("delete employee refused, dependents exist",
			zap.String("emp_code", empCode),
			zap.Int64("dependents", dependents),
		)
		return employeeerrors.ErrEmployeeHasDependents
	}

	if err := qtx.Delete(ctx, empCode); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	s.logger.Info("delete employee success", zap.String("emp_code", empCode))
	return nil
}

// employeeFields carries the replaceable fields shared by create and update.
type employeeFields struct {
	FullName, DOB, Gender, Nationality, Address, PhoneNumber, Email          string
	PassportNumber, PassportCountry, PassportIssueDate, PassportExpiryDate   string
	VisaType, VisaNumber, VisaIssueDate, VisaExpiryDate, VisaStatus          string
	PermitType, PermitNumber, PermitIssueDate, PermitExpiryDate              string
	HourlyRate                                                               float64
}

func applyFields(empl *Employee, f employeeFields) error {
	dob, err := parseDate(f.DOB)
	if err != nil {
		return err
	}

	dates := make([]time.Time, 6)
	for i, v := range []string{
		f.PassportIssueDate, f.PassportExpiryDate,
		f.VisaIssueDate, f.VisaExpiryDate,
		f.PermitIssueDate, f.PermitExpiryDate,
	} {
		d, err := parseOptionalDate(v)
		if err != nil {
			return err
		}
		dates[i] = d
	}

	empl.FullName = f.FullName
	empl.DOB = dob
	empl.Gender = f.Gender
	empl.Nationality = f.Nationality
	empl.Address = f.Address
	empl.PhoneNumber = f.PhoneNumber
	empl.Email = f.Email
	empl.PassportNumber = f.PassportNumber
	empl.PassportCountry = f.PassportCountry
	empl.PassportIssueDate = dates[0]
	empl.PassportExpiryDate = dates[1]
	empl.VisaType = f.VisaType
	empl.VisaNumber = f.VisaNumber
	empl.VisaIssueDate = dates[2]
	empl.VisaExpiryDate = dates[3]
	empl.VisaStatus = f.VisaStatus
	empl.PermitType = f.PermitType
	empl.PermitNumber = f.PermitNumber
	empl.PermitIssueDate = dates[4]
	empl.PermitExpiryDate = dates[5]
	empl.HourlyRate = f.HourlyRate

	return nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, employeeerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func parseOptionalDate(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	return parseDate(v)
}

func mapToResponse(empl Employee) EmployeeResponse {
	return EmployeeResponse{
		EmpCode:            empl.EmpCode,
		FullName:           empl.FullName,
		DOB:                formatDate(empl.DOB),
		Gender:             empl.Gender,
		Nationality:        empl.Nationality,
		Address:            empl.Address,
		PhoneNumber:        empl.PhoneNumber,
		Email:              empl.Email,
		PassportNumber:     empl.PassportNumber,
		PassportCountry:    empl.PassportCountry,
		PassportIssueDate:  formatDate(empl.PassportIssueDate),
		PassportExpiryDate: formatDate(empl.PassportExpiryDate),
		VisaType:           empl.VisaType,
		VisaNumber:         empl.VisaNumber,
		VisaIssueDate:      formatDate(empl.VisaIssueDate),
		VisaExpiryDate:     formatDate(empl.VisaExpiryDate),
		VisaStatus:         empl.VisaStatus,
		PermitType:         empl.PermitType,
		PermitNumber:       empl.PermitNumber,
		PermitIssueDate:    formatDate(empl.PermitIssueDate),
		PermitExpiryDate:   formatDate(empl.PermitExpiryDate),
		HourlyRate:         empl.HourlyRate,
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	resp := make([]EmployeeResponse, len(empls))
	for i, empl := range empls {
		resp[i] = mapToResponse(empl)
	}
	return resp
}
