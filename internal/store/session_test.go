package store

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestCreateSession_AssignsIDAndSeq(t *testing.T) {
	s := createTestStore(t)

	a := createTestSession(t, s, "bool", 2)
	b := createTestSession(t, s, "[]bool", 3)

	if a.ID != "session-1" || b.ID != "session-2" {
		t.Errorf("IDs = %q, %q, want session-1, session-2", a.ID, b.ID)
	}
	if a.Seq != 1 || b.Seq != 2 {
		t.Errorf("Seq = %d, %d, want 1, 2", a.Seq, b.Seq)
	}
}

func TestCreateSession_KeepsGivenID(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	sess, err := s.CreateSession(ctx, Session{ID: "mine", Label: "nightly", Shape: "unit", Budget: 0})
	if err != nil {
		t.Fatalf("CreateSession() failed: %v", err)
	}
	if sess.ID != "mine" {
		t.Errorf("ID = %q, want mine", sess.ID)
	}

	got, err := s.ReadSession(ctx, "mine")
	if err != nil {
		t.Fatalf("ReadSession() failed: %v", err)
	}
	if !reflect.DeepEqual(got, sess) {
		t.Errorf("ReadSession() = %+v, want %+v", got, sess)
	}

	if _, err := s.CreateSession(ctx, Session{ID: "mine", Shape: "unit"}); err == nil {
		t.Error("duplicate session ID was accepted")
	}
}

func TestCreateSession_RejectsNegativeBudget(t *testing.T) {
	s := createTestStore(t)
	if _, err := s.CreateSession(context.Background(), Session{Shape: "bool", Budget: -1}); err == nil {
		t.Error("negative budget was accepted")
	}
}

func TestReadSession_NotFound(t *testing.T) {
	s := createTestStore(t)
	_, err := s.ReadSession(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestListSessions_CreationOrder(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	empty, err := s.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions() failed: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("ListSessions() on empty store = %#v, want empty non-nil slice", empty)
	}

	for _, shape := range []string{"bool", "unit", "int[0..3]"} {
		createTestSession(t, s, shape, 1)
	}

	got, err := s.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions() failed: %v", err)
	}
	var shapes []string
	for _, sess := range got {
		shapes = append(shapes, sess.Shape)
	}
	want := []string{"bool", "unit", "int[0..3]"}
	if !reflect.DeepEqual(shapes, want) {
		t.Errorf("shapes = %v, want %v", shapes, want)
	}
}
