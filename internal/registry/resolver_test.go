package registry

import (
	"errors"
	"testing"

	"github.com/oasbuild/oasgen/internal/source"
)

func sourceSet(t *testing.T, sources ...string) *source.Set {
	t.Helper()
	set := source.NewSet()
	for _, src := range sources {
		file, err := source.Parse("fixture.go", src)
		if err != nil {
			t.Fatal(err)
		}
		set.Add(file)
	}
	return set
}

func TestResolve(t *testing.T) {
	t.Run("resolves declared type", func(t *testing.T) {
		// Arrange
		svc := NewService(sourceSet(t, `package models

type User struct {
	Name string
}
`))

		// Act
		handle, err := svc.Resolve("User")

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if handle == nil {
			t.Fatal("expected handle, got nil")
		}
		if !handle.IsObject() {
			t.Error("expected object handle")
		}
	})

	t.Run("first source wins for duplicate names", func(t *testing.T) {
		// Arrange
		svc := NewService(sourceSet(t,
			`package a

type Config struct {
	FromFirst string
}
`,
			`package b

type Config struct {
	FromSecond string
}
`))

		// Act
		handle, err := svc.Resolve("Config")

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		properties := handle.Properties()
		if len(properties) != 1 || properties[0].Name != "fromFirst" {
			t.Errorf("expected the first declaration to win, got %+v", properties)
		}
	})

	t.Run("missing type returns TypeNotFoundError", func(t *testing.T) {
		// Arrange
		svc := NewService(sourceSet(t, `package models

type User struct{}
`))

		// Act
		_, err := svc.Resolve("Ghost")

		// Assert
		if err == nil {
			t.Fatal("expected error for unknown type")
		}
		var notFound *TypeNotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("expected TypeNotFoundError, got %T", err)
		}
		if notFound.Name != "Ghost" {
			t.Errorf("expected error to carry the type name, got %q", notFound.Name)
		}
	})

	t.Run("empty name returns TypeNotFoundError", func(t *testing.T) {
		// Arrange
		svc := NewService(sourceSet(t, `package models`))

		// Act
		_, err := svc.Resolve("")

		// Assert
		var notFound *TypeNotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("expected TypeNotFoundError, got %T", err)
		}
	})

	t.Run("alias resolves to aliased structural type", func(t *testing.T) {
		// Arrange
		svc := NewService(sourceSet(t, `package models

type User struct {
	Name string
}

type Member User
`))

		// Act
		member, err := svc.Resolve("Member")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		user, err := svc.Resolve("User")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		// Assert
		if member != user {
			t.Error("expected alias to resolve to the aliased structural handle")
		}
	})
}
