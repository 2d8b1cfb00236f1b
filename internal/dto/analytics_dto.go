package dto

import "time"

// AggregateScope bounds an aggregation request.
type AggregateScope struct {
	DepartmentID *uint  `query:"department_id"`
	FacultyID    *uint  `query:"faculty_id"`
	AcademicYear string `query:"academic_year"`
}

// AggregateResponse sums approved marks within a scope. An empty scope
// yields zeros, never an error.
type AggregateResponse struct {
	TotalMarks  float64   `json:"total_marks"`
	AvgFeedback float64   `json:"avg_feedback"`
	Counts      int       `json:"counts"`
	GeneratedAt time.Time `json:"generated_at"`
	CacheHit    bool      `json:"cache_hit"`
}

// FacultyScore is one faculty member's rolled-up appraisal standing.
type FacultyScore struct {
	FacultyID          uint    `json:"faculty_id"`
	Name               string  `json:"name"`
	Email              string  `json:"email"`
	TotalActivities    int     `json:"total_activities"`
	TotalActivityMarks float64 `json:"total_activity_marks"`
	TotalTeachingMarks float64 `json:"total_teaching_marks"`
	AvgFeedback        float64 `json:"avg_feedback"`
	OverallScore       float64 `json:"overall_score"`
}

// DepartmentReport aggregates faculty scores for one department.
type DepartmentReport struct {
	DepartmentID   uint           `json:"department_id"`
	DepartmentName string         `json:"department_name"`
	DepartmentCode string         `json:"department_code"`
	TotalFaculty   int            `json:"total_faculty"`
	AvgScore       float64        `json:"avg_score"`
	Faculty        []FacultyScore `json:"faculty"`
}

// YearTrend buckets approved activity marks by academic year.
type YearTrend struct {
	AcademicYear string  `json:"academic_year"`
	Count        int     `json:"count"`
	TotalMarks   float64 `json:"total_marks"`
}

// InstitutionReport is the IQAC-facing rollup across departments.
type InstitutionReport struct {
	Departments []DepartmentReport `json:"departments"`
	YearTrends  []YearTrend        `json:"year_trends"`
	GeneratedAt time.Time          `json:"generated_at"`
	CacheHit    bool               `json:"cache_hit"`
}
