package database

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/lib/pq"
	"github.com/learning-master/api/config"
	"github.com/learning-master/api/model"
)

// AnalyticsStore runs the read-side aggregation queries (popular instructors,
// enrolled classes, admin stats) over a plain database/sql connection. It
// shares the schema that GORMStore migrates.
type AnalyticsStore struct {
	db *sql.DB
}

// StartAnalytics opens a PostgreSQL connection for aggregation queries
func StartAnalytics() (*AnalyticsStore, error) {
	getEnv, err := config.Get()
	if err != nil {
		return nil, err
	}

	connectStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getEnv.DB_HOST, getEnv.DB_PORT, getEnv.DB_USER_NAME, getEnv.DB_PASSWORD, getEnv.DB_NAME, getEnv.DB_SSL_MODE,
	)

	db, err := sql.Open("postgres", connectStr)
	if err != nil {
		log.Println("Unable to open analytics connection to PostgreSQL:", err)
		return nil, err
	}

	log.Println("Successfully connected analytics store to PostgreSQL.")
	return &AnalyticsStore{db: db}, nil
}

// NewAnalyticsStore wraps an existing connection (used by tests).
func NewAnalyticsStore(db *sql.DB) *AnalyticsStore {
	return &AnalyticsStore{db: db}
}

// Close closes the analytics connection
func (s *AnalyticsStore) Close() error {
	log.Println("Closing analytics PostgreSQL connection...")
	return s.db.Close()
}

// HealthCheck verifies the database connection is alive
func (s *AnalyticsStore) HealthCheck() error {
	return s.db.Ping()
}

// InstructorRanking is one row of the popular-instructors aggregation:
// the instructor's user record plus the summed enrollment over their classes.
type InstructorRanking struct {
	Instructor    model.User `json:"instructor"`
	TotalEnrolled int        `json:"totalEnrolled"`
}

// PopularInstructors groups classes by instructor email, sums totalEnrolled,
// joins the instructor's user record, keeps only role=instructor, and returns
// the top `limit` by enrollment.
func (s *AnalyticsStore) PopularInstructors(limit int) ([]InstructorRanking, error) {
	query := `
		SELECT u.id, u.name, u.email, u.photo_url, u.gender, u.phone, u.address, u.role, u.about, u.skills,
		       COALESCE(SUM(c.total_enrolled), 0) AS total_enrolled
		FROM classes c
		JOIN users u ON u.email = c.instructor_email
		WHERE u.role = 'instructor'
		  AND c.deleted_at IS NULL
		  AND u.deleted_at IS NULL
		GROUP BY u.id, u.name, u.email, u.photo_url, u.gender, u.phone, u.address, u.role, u.about, u.skills
		ORDER BY total_enrolled DESC
		LIMIT $1;
	`
	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rankings := []InstructorRanking{}
	for rows.Next() {
		var r InstructorRanking
		err := rows.Scan(
			&r.Instructor.ID,
			&r.Instructor.Name,
			&r.Instructor.Email,
			&r.Instructor.PhotoURL,
			&r.Instructor.Gender,
			&r.Instructor.Phone,
			&r.Instructor.Address,
			&r.Instructor.Role,
			&r.Instructor.About,
			&r.Instructor.Skills,
			&r.TotalEnrolled,
		)
		if err != nil {
			return nil, err
		}
		rankings = append(rankings, r)
	}

	return rankings, rows.Err()
}

// EnrolledClass is one row of the enrolled-classes aggregation: a purchased
// class joined with its instructor's user record (first email match).
type EnrolledClass struct {
	Class      model.Class `json:"classes"`
	Instructor model.User  `json:"instructor"`
}

// EnrolledClasses resolves every class a user has purchased, joined with the
// instructor record referenced by the class. A class whose instructor email
// matches no user still appears, with a zero instructor.
func (s *AnalyticsStore) EnrolledClasses(userEmail string) ([]EnrolledClass, error) {
	query := `
		SELECT c.id, c.name, c.description, c.image, c.video_link, c.instructor_name, c.instructor_email,
		       c.price, c.available_seats, c.total_enrolled, c.status,
		       u.id, u.name, u.email, u.photo_url, u.about
		FROM enrollments e
		JOIN enrollment_classes ec ON ec.enrollment_id = e.id
		JOIN classes c ON c.id = ec.class_id
		LEFT JOIN users u ON u.email = c.instructor_email AND u.deleted_at IS NULL
		WHERE e.user_email = $1
		  AND c.deleted_at IS NULL
		ORDER BY e.created_at DESC, ec.id ASC;
	`
	rows, err := s.db.Query(query, userEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	enrolled := []EnrolledClass{}
	for rows.Next() {
		var e EnrolledClass
		var instructorID sql.NullInt64
		var instructorName, instructorEmail, instructorPhoto, instructorAbout sql.NullString
		err := rows.Scan(
			&e.Class.ID,
			&e.Class.Name,
			&e.Class.Description,
			&e.Class.Image,
			&e.Class.VideoLink,
			&e.Class.InstructorName,
			&e.Class.InstructorEmail,
			&e.Class.Price,
			&e.Class.AvailableSeats,
			&e.Class.TotalEnrolled,
			&e.Class.Status,
			&instructorID,
			&instructorName,
			&instructorEmail,
			&instructorPhoto,
			&instructorAbout,
		)
		if err != nil {
			return nil, err
		}
		if instructorID.Valid {
			e.Instructor.ID = uint(instructorID.Int64)
			e.Instructor.Name = instructorName.String
			e.Instructor.Email = instructorEmail.String
			e.Instructor.PhotoURL = instructorPhoto.String
			e.Instructor.About = instructorAbout.String
		}
		enrolled = append(enrolled, e)
	}

	return enrolled, rows.Err()
}

// AdminStats summarizes the marketplace for the admin dashboard.
type AdminStats struct {
	ApprovedClasses int `json:"approvedClasses"`
	PendingClasses  int `json:"pendingClasses"`
	Instructors     int `json:"instructors"`
	TotalClasses    int `json:"totalClasses"`
	TotalEnrolled   int `json:"totalEnrolled"`
}

// Stats computes the admin dashboard counters in a single round trip.
func (s *AnalyticsStore) Stats() (*AdminStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM classes WHERE status = 'approved' AND deleted_at IS NULL),
			(SELECT COUNT(*) FROM classes WHERE status = 'pending' AND deleted_at IS NULL),
			(SELECT COUNT(*) FROM users WHERE role = 'instructor' AND deleted_at IS NULL),
			(SELECT COUNT(*) FROM classes WHERE deleted_at IS NULL),
			(SELECT COUNT(*) FROM enrollments);
	`
	stats := new(AdminStats)
	err := s.db.QueryRow(query).Scan(
		&stats.ApprovedClasses,
		&stats.PendingClasses,
		&stats.Instructors,
		&stats.TotalClasses,
		&stats.TotalEnrolled,
	)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
