package record

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strings"
	"testing"

	"github.com/zulandar/changetrack/internal/models"
)

var (
	widget  = models.Product{Name: "Widget"}
	release = models.ProductRelease{Product: widget, ReleaseID: "1.0.0.0", Date: "2024-01-01"}
)

func TestWidths(t *testing.T) {
	tests := []struct {
		name  string
		width int
		want  int
	}{
		{"product", Product{}.Width(), 11},
		{"release", Release{}.Width(), 30},
		{"requester", Requester{}.Width(), 81},
		{"change request", ChangeRequest{}.Width(), 56},
		{"change item", ChangeItem{}.Width(), 214},
	}
	for _, tt := range tests {
		if tt.width != tt.want {
			t.Errorf("%s width = %d, want %d", tt.name, tt.width, tt.want)
		}
	}
}

func TestProduct_Layout(t *testing.T) {
	b, err := Product{}.Encode(widget)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := append([]byte("Widget"), 0, 0, 0, 0, 0)
	if !bytes.Equal(b, want) {
		t.Errorf("Encode = %q, want %q", b, want)
	}
}

func TestChangeItem_Layout(t *testing.T) {
	item := models.ChangeItem{
		ID:          7,
		Product:     widget,
		Description: "desc",
		State:       models.Done,
		Priority:    3,
		Reported:    "2024-01-02",
		Release:     release,
	}
	b, err := ChangeItem{}.Encode(item)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(b) != ChangeItemWidth {
		t.Fatalf("len = %d, want %d", len(b), ChangeItemWidth)
	}
	if got := binary.LittleEndian.Uint32(b[0:4]); got != 7 {
		t.Errorf("id bytes = %d, want 7", got)
	}
	if got := string(b[4:10]); got != "Widget" {
		t.Errorf("product block = %q", got)
	}
	descOff := 4 + ProductWidth
	if got := string(b[descOff : descOff+4]); got != "desc" {
		t.Errorf("description = %q", got)
	}
	dateOff := descOff + DescriptionSize
	if got := string(b[dateOff : dateOff+10]); got != "2024-01-02" {
		t.Errorf("reported = %q", got)
	}
	relOff := dateOff + DateSize
	if got := string(b[relOff+ProductWidth : relOff+ProductWidth+7]); got != "1.0.0.0" {
		t.Errorf("release id = %q", got)
	}
	prioOff := relOff + ReleaseWidth
	if got := binary.LittleEndian.Uint32(b[prioOff:]); got != 3 {
		t.Errorf("priority = %d, want 3", got)
	}
	if got := binary.LittleEndian.Uint32(b[prioOff+4:]); got != uint32(models.Done) {
		t.Errorf("state = %d, want %d", got, models.Done)
	}
}

func TestRoundTrip(t *testing.T) {
	t.Run("product", func(t *testing.T) {
		for _, p := range []models.Product{widget, {Name: "0123456789"}, {Name: ""}} {
			b, err := Product{}.Encode(p)
			if err != nil {
				t.Fatalf("Encode(%v): %v", p, err)
			}
			got, err := Product{}.Decode(b)
			if err != nil || got != p {
				t.Errorf("round trip %v = %v, %v", p, got, err)
			}
		}
	})

	t.Run("release", func(t *testing.T) {
		b, err := Release{}.Encode(release)
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		got, err := Release{}.Decode(b)
		if err != nil || got != release {
			t.Errorf("round trip = %v, %v", got, err)
		}
	})

	t.Run("requester", func(t *testing.T) {
		r := models.Requester{
			Name:       strings.Repeat("n", models.MaxRequesterNameLen),
			Phone:      "60455512345",
			Email:      strings.Repeat("e", models.MaxEmailLen),
			Department: "Engineering",
		}
		b, err := Requester{}.Encode(r)
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		got, err := Requester{}.Decode(b)
		if err != nil || got != r {
			t.Errorf("round trip = %v, %v", got, err)
		}
	})

	t.Run("change request", func(t *testing.T) {
		c := models.ChangeRequest{ID: 42, RequestedBy: "Grace Hopper", Product: widget, Date: "2024-03-04"}
		b, err := ChangeRequest{}.Encode(c)
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		got, err := ChangeRequest{}.Decode(b)
		if err != nil || got != c {
			t.Errorf("round trip = %v, %v", got, err)
		}
	})

	t.Run("change item", func(t *testing.T) {
		for _, c := range []models.ChangeItem{
			{ID: 0, Product: widget, Description: "desc", State: models.Assessed, Priority: 3, Reported: "2024-01-01", Release: release},
			{ID: 1 << 30, Product: widget, Description: strings.Repeat("x", models.MaxDescriptionLen), State: models.Cancelled, Priority: 5, Reported: "2024-01-01"},
		} {
			b, err := ChangeItem{}.Encode(c)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			got, err := ChangeItem{}.Decode(b)
			if err != nil || got != c {
				t.Errorf("round trip = %+v, %v", got, err)
			}
		}
	})
}

func TestEncode_FieldTooLong(t *testing.T) {
	_, err := Product{}.Encode(models.Product{Name: "01234567890"})
	if !errors.Is(err, ErrFieldTooLong) {
		t.Errorf("11-char name: error = %v, want ErrFieldTooLong", err)
	}

	item := models.ChangeItem{Product: widget, Description: strings.Repeat("x", DescriptionSize)}
	if _, err := (ChangeItem{}).Encode(item); !errors.Is(err, ErrFieldTooLong) {
		t.Errorf("150-char description: error = %v, want ErrFieldTooLong", err)
	}

	if _, err := (Product{}).Encode(models.Product{Name: "a\x00b"}); !errors.Is(err, ErrFieldInvalid) {
		t.Errorf("NUL in name: error = %v, want ErrFieldInvalid", err)
	}
}

func TestDecode_Unterminated(t *testing.T) {
	// files written without a terminator in a full field still decode
	b := []byte("ABCDEFGHIJK")
	p, err := Product{}.Decode(b)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if p.Name != "ABCDEFGHIJK" {
		t.Errorf("Name = %q, want full field", p.Name)
	}
}

func TestDecode_Short(t *testing.T) {
	_, err := ChangeItem{}.Decode(make([]byte, ChangeItemWidth-1))
	if !errors.Is(err, ErrShortRecord) {
		t.Errorf("error = %v, want ErrShortRecord", err)
	}
}
