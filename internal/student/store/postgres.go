package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"sanad/internal/student/models"
	"sanad/pkg/platform/sentinel"
)

// PostgresStore persists student records in PostgreSQL.
//
// The students table keeps a citext-free schema: id uniqueness is enforced by
// a unique index on lower(id), and listing order comes from created_at DESC.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore constructs a PostgreSQL-backed store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const uniqueViolation = "23505"

const studentColumns = `id, name, father_name, phone,
	course_name_bn, course_name_en, course_duration_bn, course_duration_en,
	start_date, end_date, image_url, certificate_pdf_url`

// Create inserts a new record.
func (s *PostgresStore) Create(ctx context.Context, student *models.Student) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO students (`+studentColumns+`, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, now())`,
		student.ID, student.Name, student.FatherName, student.Phone,
		student.CourseNameBN, student.CourseNameEN,
		student.CourseDurationBN, student.CourseDurationEN,
		student.StartDate, student.EndDate,
		student.ImageURL, student.CertificatePDFURL,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// Update replaces the record with the same id.
func (s *PostgresStore) Update(ctx context.Context, student *models.Student) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE students SET
			name = $2, father_name = $3, phone = $4,
			course_name_bn = $5, course_name_en = $6,
			course_duration_bn = $7, course_duration_en = $8,
			start_date = $9, end_date = $10,
			image_url = $11, certificate_pdf_url = $12
		WHERE lower(id) = lower($1)`,
		student.ID, student.Name, student.FatherName, student.Phone,
		student.CourseNameBN, student.CourseNameEN,
		student.CourseDurationBN, student.CourseDurationEN,
		student.StartDate, student.EndDate,
		student.ImageURL, student.CertificatePDFURL,
	)
	if err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// Delete removes the record with the given id.
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM students WHERE lower(id) = lower($1)`, id)
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// FindByID looks a record up by id, ignoring case.
func (s *PostgresStore) FindByID(ctx context.Context, id string) (*models.Student, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+studentColumns+`
		FROM students WHERE lower(id) = lower($1)`, id)

	student, err := scanStudent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find student: %w", err)
	}
	return student, nil
}

// List returns all records newest-first.
func (s *PostgresStore) List(ctx context.Context) ([]*models.Student, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+studentColumns+`
		FROM students ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	defer rows.Close()

	var out []*models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("list students: %w", err)
		}
		out = append(out, student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return out, nil
}

// Count returns the number of records.
func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM students`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count students: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStudent(row rowScanner) (*models.Student, error) {
	var student models.Student
	err := row.Scan(
		&student.ID, &student.Name, &student.FatherName, &student.Phone,
		&student.CourseNameBN, &student.CourseNameEN,
		&student.CourseDurationBN, &student.CourseDurationEN,
		&student.StartDate, &student.EndDate,
		&student.ImageURL, &student.CertificatePDFURL,
	)
	if err != nil {
		return nil, err
	}
	return &student, nil
}
