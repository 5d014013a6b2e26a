package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"sanad/internal/student/models"
	"sanad/pkg/platform/sentinel"
)

type MemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	ctx   context.Context
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.ctx = context.Background()
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func newStudent(id string) *models.Student {
	return &models.Student{
		ID:               id,
		Name:             "Rahim Uddin",
		FatherName:       "Karim Uddin",
		Phone:            "01711000000",
		CourseNameBN:     "কম্পিউটার অফিস অ্যাপ্লিকেশন",
		CourseNameEN:     "Computer Office Application",
		CourseDurationBN: "৬ মাস",
		CourseDurationEN: "6 Months",
		StartDate:        "2024-01-01",
		EndDate:          "2024-06-30",
	}
}

func (s *MemoryStoreSuite) TestCreateAndFind() {
	s.Run("creates and finds by id", func() {
		s.Require().NoError(s.store.Create(s.ctx, newStudent("WTC-1001")))

		found, err := s.store.FindByID(s.ctx, "WTC-1001")
		s.Require().NoError(err)
		s.Equal("Rahim Uddin", found.Name)
	})

	s.Run("lookup ignores id case", func() {
		found, err := s.store.FindByID(s.ctx, "wtc-1001")
		s.Require().NoError(err)
		s.Equal("WTC-1001", found.ID)
	})

	s.Run("returns ErrNotFound for unknown id", func() {
		_, err := s.store.FindByID(s.ctx, "WTC-9999")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *MemoryStoreSuite) TestIDUniqueness() {
	s.Require().NoError(s.store.Create(s.ctx, newStudent("WTC-2001")))

	s.Run("rejects duplicate id", func() {
		err := s.store.Create(s.ctx, newStudent("WTC-2001"))
		s.Require().ErrorIs(err, sentinel.ErrConflict)
	})

	s.Run("rejects duplicate id with different case", func() {
		err := s.store.Create(s.ctx, newStudent("wtc-2001"))
		s.Require().ErrorIs(err, sentinel.ErrConflict)
	})
}

func (s *MemoryStoreSuite) TestListNewestFirst() {
	for i := 1; i <= 3; i++ {
		s.Require().NoError(s.store.Create(s.ctx, newStudent(fmt.Sprintf("WTC-%d", i))))
	}

	records, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(records, 3)
	s.Equal("WTC-3", records[0].ID)
	s.Equal("WTC-1", records[2].ID)

	count, err := s.store.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(3, count)
}

func (s *MemoryStoreSuite) TestUpdate() {
	s.Require().NoError(s.store.Create(s.ctx, newStudent("WTC-3001")))
	s.Require().NoError(s.store.Create(s.ctx, newStudent("WTC-3002")))

	s.Run("updates in place without reordering", func() {
		updated := newStudent("WTC-3001")
		updated.Name = "Changed Name"
		s.Require().NoError(s.store.Update(s.ctx, updated))

		records, err := s.store.List(s.ctx)
		s.Require().NoError(err)
		s.Equal("WTC-3002", records[0].ID)
		s.Equal("Changed Name", records[1].Name)
	})

	s.Run("returns ErrNotFound for unknown id", func() {
		err := s.store.Update(s.ctx, newStudent("WTC-9999"))
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *MemoryStoreSuite) TestDelete() {
	s.Require().NoError(s.store.Create(s.ctx, newStudent("WTC-4001")))

	s.Run("deletes ignoring case", func() {
		s.Require().NoError(s.store.Delete(s.ctx, "wtc-4001"))
		_, err := s.store.FindByID(s.ctx, "WTC-4001")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("returns ErrNotFound for missing record", func() {
		s.Require().ErrorIs(s.store.Delete(s.ctx, "WTC-4001"), sentinel.ErrNotFound)
	})
}

func (s *MemoryStoreSuite) TestReturnsCopies() {
	s.Require().NoError(s.store.Create(s.ctx, newStudent("WTC-5001")))

	found, err := s.store.FindByID(s.ctx, "WTC-5001")
	s.Require().NoError(err)
	found.Name = "Mutated"

	again, err := s.store.FindByID(s.ctx, "WTC-5001")
	s.Require().NoError(err)
	s.Equal("Rahim Uddin", again.Name)
}
