package usecase

import (
	"testing"

	"github.com/mosipdecode/backend/internal/domain"
)

func TestFindAll(t *testing.T) {
	registry := newTestRegistry(t)
	latin := registry.Resolve("en")

	t.Run("prefers the longest variant", func(t *testing.T) {
		matches := latin.FindAll("Phone Number: 555-1234")
		if len(matches) != 1 {
			t.Fatalf("len(matches) = %d, want 1: %+v", len(matches), matches)
		}
		m := matches[0]
		if m.Field != domain.FieldPhone {
			t.Errorf("Field = %v, want phone", m.Field)
		}
		if m.Label != "phone number" {
			t.Errorf("Label = %q, want %q", m.Label, "phone number")
		}
		if m.Start != 0 || m.End != 14 {
			t.Errorf("span = [%d,%d), want [0,14)", m.Start, m.End)
		}
	})

	t.Run("yields matches left to right", func(t *testing.T) {
		matches := latin.FindAll("Name John Doe AGE 30 e-mail: jd@example.com")
		want := []domain.CanonicalField{domain.FieldName, domain.FieldAge, domain.FieldEmail}
		if len(matches) != len(want) {
			t.Fatalf("len(matches) = %d, want %d: %+v", len(matches), len(want), matches)
		}
		for i, f := range want {
			if matches[i].Field != f {
				t.Errorf("matches[%d].Field = %v, want %v", i, matches[i].Field, f)
			}
			if i > 0 && matches[i].Start <= matches[i-1].Start {
				t.Errorf("matches not ordered: %+v", matches)
			}
		}
	})

	t.Run("respects word boundaries", func(t *testing.T) {
		if matches := latin.FindAll("David Stage Telegram"); len(matches) != 0 {
			t.Errorf("expected no matches, got %+v", matches)
		}
	})

	t.Run("no labels", func(t *testing.T) {
		if matches := latin.FindAll("hello world"); matches != nil {
			t.Errorf("expected nil, got %+v", matches)
		}
	})

	t.Run("chinese labels without word boundaries", func(t *testing.T) {
		zh := registry.Resolve("ch")
		matches := zh.FindAll("姓名:张伟 年龄:30 联系电话:13800138000")
		want := []domain.CanonicalField{domain.FieldName, domain.FieldAge, domain.FieldPhone}
		if len(matches) != len(want) {
			t.Fatalf("len(matches) = %d, want %d: %+v", len(matches), len(want), matches)
		}
		for i, f := range want {
			if matches[i].Field != f {
				t.Errorf("matches[%d].Field = %v, want %v", i, matches[i].Field, f)
			}
		}
		if matches[2].Label != "联系电话" {
			t.Errorf("Label = %q, want 联系电话", matches[2].Label)
		}
	})

	t.Run("ascii label in chinese catalog does not fire inside words", func(t *testing.T) {
		zh := registry.Resolve("zh")
		matches := zh.FindAll("邮箱:david@example.com")
		if len(matches) != 1 || matches[0].Field != domain.FieldEmail {
			t.Errorf("matches = %+v, want single email match", matches)
		}
	})

	t.Run("korean labels", func(t *testing.T) {
		ko := registry.Resolve("ko")
		matches := ko.FindAll("이름: 김민준 이메일 주소: minjun@example.com")
		if len(matches) != 2 {
			t.Fatalf("len(matches) = %d, want 2: %+v", len(matches), matches)
		}
		if matches[1].Label != "이메일 주소" {
			t.Errorf("Label = %q, want longest variant", matches[1].Label)
		}
	})
}

func TestMatchFragment(t *testing.T) {
	latin := newTestRegistry(t).Resolve("en")

	tests := []struct {
		name      string
		text      string
		wantField domain.CanonicalField
		wantValue string
		wantOK    bool
	}{
		{"label and value", "Name: John Doe", domain.FieldName, "John Doe", true},
		{"surrounding whitespace", "  Phone Number :  555-1234 ", domain.FieldPhone, "555-1234", true},
		{"colon required", "Name John Doe", "", "", false},
		{"two labels", "Name: John Age: 30", "", "", false},
		{"empty value", "Name:", "", "", false},
		{"label not at start", "Mr Name: John", "", "", false},
		{"no label", "John Doe", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field, value, ok := latin.MatchFragment(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if field != tt.wantField {
				t.Errorf("field = %v, want %v", field, tt.wantField)
			}
			if value != tt.wantValue {
				t.Errorf("value = %q, want %q", value, tt.wantValue)
			}
		})
	}
}

func TestTruncateAtLabelWord(t *testing.T) {
	registry := newTestRegistry(t)
	latin := registry.Resolve("en")

	tests := []struct {
		input string
		want  string
	}{
		{"John Age 30", "John"},
		{"John Doe gender M", "John Doe"},
		{"Ananya Rao", "Ananya Rao"},
		{"Johnson Agee", "Johnson Agee"},
		{"David Passport X123", "David"},
		{"Age 30", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := latin.TruncateAtLabelWord(tt.input); got != tt.want {
				t.Errorf("TruncateAtLabelWord(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}

	t.Run("chinese stops at other field labels", func(t *testing.T) {
		zh := registry.Resolve("zh")
		if got := zh.TruncateAtLabelWord("张伟 性别 男"); got != "张伟" {
			t.Errorf("TruncateAtLabelWord() = %q, want 张伟", got)
		}
	})
}
