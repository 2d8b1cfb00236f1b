// Package marks implements the category-specific marks formulas used by the
// validation workflow. All computation is pure: no I/O, no clock, no store.
package marks

// Category identifies a performance category with a fixed scoring formula.
type Category string

// Performance categories recognised by the formula engine.
const (
	CategoryTeachingScore         Category = "TEACHING_SCORE"
	CategoryProjectsGuided        Category = "PROJECTS_GUIDED"
	CategoryAdminActivities       Category = "ADMIN_ACTIVITIES"
	CategoryAchievements          Category = "ACHIEVEMENTS"
	CategoryCounselling           Category = "COUNSELLING"
	CategoryResearch              Category = "RESEARCH"
	CategoryEventsAttended        Category = "EVENTS_ATTENDED"
	CategoryEventsConducted       Category = "EVENTS_CONDUCTED"
	CategoryPapersPublished       Category = "PAPERS_PUBLISHED"
	CategoryBooksAuthored         Category = "BOOKS_AUTHORED"
	CategoryPatents               Category = "PATENTS"
	CategoryArticles              Category = "ARTICLES"
	CategoryStudentEnrichment     Category = "STUDENT_ENRICHMENT"
	CategoryExternalPresentations Category = "EXTERNAL_PRESENTATIONS"
	CategoryCoursesUndertaken     Category = "COURSES_UNDERTAKEN"
	CategoryExtraCurricular       Category = "EXTRA_CURRICULAR"
)

// Input carries the raw quantities a formula may consume. Only the fields
// relevant to the category are read; the rest are ignored.
type Input struct {
	// Score is the teaching pass percentage (0-100).
	Score float64 `json:"score,omitempty"`
	// Count is the generic entry count for tiered formulas.
	Count int `json:"count,omitempty"`
	// Marks is the coordinator-assessed value for pass-through categories.
	Marks float64 `json:"marks,omitempty"`

	Seminars      int `json:"seminars,omitempty"`
	GuestLectures int `json:"guest_lectures,omitempty"`
	Workshops     int `json:"workshops,omitempty"`
	FDP           int `json:"fdp,omitempty"`
	Conferences   int `json:"conferences,omitempty"`

	ConfNational         int `json:"conf_national,omitempty"`
	ConfInternational    int `json:"conf_international,omitempty"`
	JournalNational      int `json:"journal_national,omitempty"`
	JournalInternational int `json:"journal_international,omitempty"`

	IsAuthored        bool `json:"is_authored,omitempty"`
	IsGranted         bool `json:"is_granted,omitempty"`
	ImpactFactorCount int  `json:"impact_factor_count,omitempty"`
}

// maxMarks is the per-category ceiling. PAPERS_PUBLISHED carries a nominal
// ceiling only: its additive formula is intentionally left unclamped to match
// the appraisal policy in force.
var maxMarks = map[Category]float64{
	CategoryTeachingScore:         80,
	CategoryProjectsGuided:        30,
	CategoryAdminActivities:       30,
	CategoryAchievements:          10,
	CategoryCounselling:           30,
	CategoryResearch:              50,
	CategoryEventsAttended:        30,
	CategoryEventsConducted:       40,
	CategoryPapersPublished:       60,
	CategoryBooksAuthored:         20,
	CategoryPatents:               20,
	CategoryArticles:              10,
	CategoryStudentEnrichment:     40,
	CategoryExternalPresentations: 40,
	CategoryCoursesUndertaken:     40,
	CategoryExtraCurricular:       40,
}

// Known reports whether the category has a registered formula. Compute
// returns 0 for unknown categories; callers that care should check Known and
// surface the fallback instead of treating 0 as an earned score.
func Known(category Category) bool {
	_, ok := maxMarks[category]
	return ok
}

// MaxMarks returns the ceiling for the category, or 0 when unknown.
func MaxMarks(category Category) float64 {
	return maxMarks[category]
}

// Categories returns every registered category in declaration order.
func Categories() []Category {
	return []Category{
		CategoryTeachingScore,
		CategoryProjectsGuided,
		CategoryAdminActivities,
		CategoryAchievements,
		CategoryCounselling,
		CategoryResearch,
		CategoryEventsAttended,
		CategoryEventsConducted,
		CategoryPapersPublished,
		CategoryBooksAuthored,
		CategoryPatents,
		CategoryArticles,
		CategoryStudentEnrichment,
		CategoryExternalPresentations,
		CategoryCoursesUndertaken,
		CategoryExtraCurricular,
	}
}

// Compute maps the raw input to a bounded mark for the category. Unknown
// categories yield 0.
func Compute(category Category, input Input) float64 {
	switch category {
	case CategoryTeachingScore:
		if input.Score <= 0 {
			return 0
		}
		return input.Score * 80 / 100

	case CategoryProjectsGuided, CategoryAdminActivities, CategoryCounselling:
		return tieredThirty(countOrOne(input.Count))

	case CategoryAchievements:
		// Only one entry is considered regardless of count.
		return 10

	case CategoryResearch:
		return input.Marks

	case CategoryEventsAttended:
		total := float64(input.Seminars*5 + input.GuestLectures*5 + input.Workshops*5 + input.FDP*10 + input.Conferences*10)
		return minFloat(total, 30)

	case CategoryEventsConducted:
		total := float64(input.Seminars*5 + input.GuestLectures*5 + input.Workshops*10 + input.FDP*15 + input.Conferences*15)
		return minFloat(total, 40)

	case CategoryPapersPublished:
		// No clamp: the policy sheet lists 60 as nominal but the sum is
		// accepted as-is.
		return float64(input.ConfNational*10 + input.ConfInternational*30 + input.JournalNational*10 + input.JournalInternational*30)

	case CategoryBooksAuthored:
		if input.IsAuthored {
			return 20
		}
		return 10

	case CategoryPatents:
		if input.IsGranted {
			return 20
		}
		return 5

	case CategoryArticles:
		if countOrOne(input.ImpactFactorCount) >= 2 {
			return 10
		}
		return 5

	case CategoryStudentEnrichment, CategoryExternalPresentations, CategoryExtraCurricular:
		return tieredForty(countOrOne(input.Count))

	case CategoryCoursesUndertaken:
		return minFloat(float64(countOrOne(input.Count)*10), 40)

	default:
		return 0
	}
}

func tieredThirty(count int) float64 {
	switch {
	case count >= 3:
		return 30
	case count == 2:
		return 20
	default:
		return 10
	}
}

func tieredForty(count int) float64 {
	switch {
	case count >= 4:
		return 40
	case count == 3:
		return 30
	case count == 2:
		return 20
	default:
		return 10
	}
}

func countOrOne(count int) int {
	if count <= 0 {
		return 1
	}
	return count
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
