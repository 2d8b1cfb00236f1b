package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/fpams-go-api/internal/dto"
	"github.com/noah-isme/fpams-go-api/internal/models"
	"github.com/noah-isme/fpams-go-api/internal/repository"
)

// AnalyticsService aggregates approved marks into appraisal reports. All
// reads go through a short-lived redis cache because report queries fan out
// across several tables.
type AnalyticsService interface {
	Aggregate(ctx context.Context, actor Actor, scope dto.AggregateScope) (dto.AggregateResponse, error)
	FacultyReport(ctx context.Context, actor Actor, facultyID uint, academicYear string) (dto.FacultyScore, error)
	DepartmentReport(ctx context.Context, actor Actor, departmentID uint, academicYear string) (dto.DepartmentReport, error)
	InstitutionReport(ctx context.Context, actor Actor, academicYear string) (dto.InstitutionReport, error)
}

type analyticsService struct {
	repo     repository.AnalyticsRepository
	users    repository.UserRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
	now      func() time.Time
	tracer   trace.Tracer
}

// NewAnalyticsService constructs the analytics service. cache may be nil,
// in which case every report is computed fresh.
func NewAnalyticsService(repo repository.AnalyticsRepository, users repository.UserRepository, cache *redis.Client, cacheTTL time.Duration, logger zerolog.Logger) AnalyticsService {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &analyticsService{
		repo:     repo,
		users:    users,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger.With().Str("component", "analytics_service").Logger(),
		now:      time.Now,
		tracer:   otel.Tracer("github.com/noah-isme/fpams-go-api/internal/service/analytics"),
	}
}

func (s *analyticsService) Aggregate(ctx context.Context, actor Actor, scope dto.AggregateScope) (dto.AggregateResponse, error) {
	ctx, span := s.tracer.Start(ctx, "analytics.aggregate")
	defer span.End()

	repoScope, err := s.authorizeScope(actor, scope)
	if err != nil {
		return dto.AggregateResponse{}, err
	}

	key := fmt.Sprintf("fpams:agg:%s:%s:%s",
		uintKey(repoScope.DepartmentID), uintKey(repoScope.FacultyID), repoScope.AcademicYear)

	var cached dto.AggregateResponse
	if s.cacheGet(ctx, key, &cached) {
		cached.CacheHit = true
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return cached, nil
	}

	activities, err := s.repo.ListApprovedActivities(ctx, repoScope)
	if err != nil {
		return dto.AggregateResponse{}, err
	}

	scores, err := s.repo.ListApprovedTeachingScores(ctx, repoScope)
	if err != nil {
		return dto.AggregateResponse{}, err
	}

	feedback, err := s.repo.ListFeedback(ctx, repoScope)
	if err != nil {
		return dto.AggregateResponse{}, err
	}

	response := dto.AggregateResponse{GeneratedAt: s.now()}
	for _, activity := range activities {
		if activity.Marks != nil {
			response.TotalMarks += *activity.Marks
		}
		response.Counts++
	}
	for _, score := range scores {
		if score.Marks != nil {
			response.TotalMarks += *score.Marks
		}
		response.Counts++
	}
	response.AvgFeedback = averageFeedback(feedback)

	s.cacheSet(ctx, key, response)

	return response, nil
}

func (s *analyticsService) FacultyReport(ctx context.Context, actor Actor, facultyID uint, academicYear string) (dto.FacultyScore, error) {
	ctx, span := s.tracer.Start(ctx, "analytics.faculty_report")
	defer span.End()

	faculty, err := s.users.GetByID(ctx, facultyID)
	if err != nil {
		return dto.FacultyScore{}, notFoundOr(err)
	}

	switch actor.Role {
	case models.RoleFaculty:
		if actor.ID != facultyID {
			return dto.FacultyScore{}, ErrForbidden
		}
	case models.RoleHOD:
		if actor.DepartmentID == nil || faculty.DepartmentID == nil ||
			*actor.DepartmentID != *faculty.DepartmentID {
			return dto.FacultyScore{}, ErrForbidden
		}
	case models.RolePrincipal, models.RoleIQAC, models.RoleSuperAdmin:
	default:
		return dto.FacultyScore{}, ErrForbidden
	}

	return s.facultyScore(ctx, faculty, academicYear)
}

func (s *analyticsService) DepartmentReport(ctx context.Context, actor Actor, departmentID uint, academicYear string) (dto.DepartmentReport, error) {
	ctx, span := s.tracer.Start(ctx, "analytics.department_report")
	span.SetAttributes(attribute.Int64("department_id", int64(departmentID)))
	defer span.End()

	switch actor.Role {
	case models.RoleHOD:
		if actor.DepartmentID == nil || *actor.DepartmentID != departmentID {
			return dto.DepartmentReport{}, ErrForbidden
		}
	case models.RolePrincipal, models.RoleIQAC, models.RoleSuperAdmin:
	default:
		return dto.DepartmentReport{}, ErrForbidden
	}

	key := fmt.Sprintf("fpams:dept:%d:%s", departmentID, academicYear)
	var cached dto.DepartmentReport
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	report, err := s.departmentReport(ctx, departmentID, academicYear)
	if err != nil {
		return dto.DepartmentReport{}, err
	}

	s.cacheSet(ctx, key, report)

	return report, nil
}

func (s *analyticsService) departmentReport(ctx context.Context, departmentID uint, academicYear string) (dto.DepartmentReport, error) {
	departments, err := s.users.ListDepartments(ctx)
	if err != nil {
		return dto.DepartmentReport{}, err
	}

	report := dto.DepartmentReport{DepartmentID: departmentID}
	for _, department := range departments {
		if department.ID == departmentID {
			report.DepartmentName = department.Name
			report.DepartmentCode = department.Code
		}
	}

	faculty, err := s.users.ListFaculty(ctx, &departmentID)
	if err != nil {
		return dto.DepartmentReport{}, err
	}

	report.TotalFaculty = len(faculty)
	report.Faculty = make([]dto.FacultyScore, 0, len(faculty))

	var sum float64
	for _, member := range faculty {
		score, err := s.facultyScore(ctx, member, academicYear)
		if err != nil {
			return dto.DepartmentReport{}, err
		}
		report.Faculty = append(report.Faculty, score)
		sum += score.OverallScore
	}

	if len(faculty) > 0 {
		report.AvgScore = sum / float64(len(faculty))
	}

	sort.Slice(report.Faculty, func(i, j int) bool {
		return report.Faculty[i].OverallScore > report.Faculty[j].OverallScore
	})

	return report, nil
}

func (s *analyticsService) InstitutionReport(ctx context.Context, actor Actor, academicYear string) (dto.InstitutionReport, error) {
	ctx, span := s.tracer.Start(ctx, "analytics.institution_report")
	defer span.End()

	switch actor.Role {
	case models.RolePrincipal, models.RoleIQAC, models.RoleSuperAdmin:
	default:
		return dto.InstitutionReport{}, ErrForbidden
	}

	key := fmt.Sprintf("fpams:institution:%s", academicYear)
	var cached dto.InstitutionReport
	if s.cacheGet(ctx, key, &cached) {
		cached.CacheHit = true
		return cached, nil
	}

	departments, err := s.users.ListDepartments(ctx)
	if err != nil {
		return dto.InstitutionReport{}, err
	}

	report := dto.InstitutionReport{
		Departments: make([]dto.DepartmentReport, 0, len(departments)),
		GeneratedAt: s.now(),
	}

	for _, department := range departments {
		departmentReport, err := s.departmentReport(ctx, department.ID, academicYear)
		if err != nil {
			return dto.InstitutionReport{}, err
		}
		report.Departments = append(report.Departments, departmentReport)
	}

	trends, err := s.yearTrends(ctx)
	if err != nil {
		return dto.InstitutionReport{}, err
	}
	report.YearTrends = trends

	s.cacheSet(ctx, key, report)

	return report, nil
}

// facultyScore rolls one member's approved submissions and feedback into the
// appraisal figure: activity marks plus teaching marks plus twice the
// average feedback rating.
func (s *analyticsService) facultyScore(ctx context.Context, faculty models.User, academicYear string) (dto.FacultyScore, error) {
	id := faculty.ID
	scope := repository.AnalyticsScope{FacultyID: &id, AcademicYear: academicYear}

	activities, err := s.repo.ListApprovedActivities(ctx, scope)
	if err != nil {
		return dto.FacultyScore{}, err
	}

	teaching, err := s.repo.ListApprovedTeachingScores(ctx, scope)
	if err != nil {
		return dto.FacultyScore{}, err
	}

	feedback, err := s.repo.ListFeedback(ctx, scope)
	if err != nil {
		return dto.FacultyScore{}, err
	}

	score := dto.FacultyScore{
		FacultyID:       faculty.ID,
		Name:            faculty.Name,
		Email:           faculty.Email,
		TotalActivities: len(activities),
	}

	for _, activity := range activities {
		if activity.Marks != nil {
			score.TotalActivityMarks += *activity.Marks
		}
	}
	for _, entry := range teaching {
		if entry.Marks != nil {
			score.TotalTeachingMarks += *entry.Marks
		}
	}

	score.AvgFeedback = averageFeedback(feedback)
	score.OverallScore = score.TotalActivityMarks + score.TotalTeachingMarks + score.AvgFeedback*2

	return score, nil
}

func (s *analyticsService) yearTrends(ctx context.Context) ([]dto.YearTrend, error) {
	activities, err := s.repo.ListApprovedActivities(ctx, repository.AnalyticsScope{})
	if err != nil {
		return nil, err
	}

	buckets := make(map[string]*dto.YearTrend)
	for _, activity := range activities {
		bucket, ok := buckets[activity.AcademicYear]
		if !ok {
			bucket = &dto.YearTrend{AcademicYear: activity.AcademicYear}
			buckets[activity.AcademicYear] = bucket
		}
		bucket.Count++
		if activity.Marks != nil {
			bucket.TotalMarks += *activity.Marks
		}
	}

	trends := make([]dto.YearTrend, 0, len(buckets))
	for _, bucket := range buckets {
		trends = append(trends, *bucket)
	}
	sort.Slice(trends, func(i, j int) bool {
		return trends[i].AcademicYear < trends[j].AcademicYear
	})

	return trends, nil
}

// authorizeScope clamps the requested aggregation scope to the actor's
// visibility.
func (s *analyticsService) authorizeScope(actor Actor, scope dto.AggregateScope) (repository.AnalyticsScope, error) {
	repoScope := repository.AnalyticsScope{AcademicYear: scope.AcademicYear}

	switch actor.Role {
	case models.RoleFaculty:
		id := actor.ID
		repoScope.FacultyID = &id

	case models.RoleHOD:
		if actor.DepartmentID == nil {
			return repository.AnalyticsScope{}, ErrForbidden
		}
		repoScope.DepartmentID = actor.DepartmentID
		repoScope.FacultyID = scope.FacultyID

	case models.RolePrincipal, models.RoleIQAC, models.RoleSuperAdmin:
		repoScope.DepartmentID = scope.DepartmentID
		repoScope.FacultyID = scope.FacultyID

	default:
		return repository.AnalyticsScope{}, ErrForbidden
	}

	return repoScope, nil
}

func (s *analyticsService) cacheGet(ctx context.Context, key string, out any) bool {
	if s.cache == nil {
		return false
	}

	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}

	if err := json.Unmarshal(raw, out); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("dropping corrupt cache entry")
		s.cache.Del(ctx, key)
		return false
	}

	return true
}

func (s *analyticsService) cacheSet(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

func averageFeedback(entries []models.Feedback) float64 {
	if len(entries) == 0 {
		return 0
	}

	var sum float64
	for _, entry := range entries {
		sum += float64(entry.Rating)
	}

	return sum / float64(len(entries))
}

func uintKey(value *uint) string {
	if value == nil {
		return "all"
	}
	return fmt.Sprintf("%d", *value)
}
