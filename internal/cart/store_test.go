package cart

import (
	"encoding/json"
	"testing"

	"github.com/agrisolutions-hub/agrisolutions-api/internal/models"
)

func TestDecodeRoundTrip(t *testing.T) {
	original := &models.Cart{}
	original.Add(models.CartLine{Name: "Maize Seeds", Price: 5000, Quantity: 2, Unit: "kg"})
	original.Add(models.CartLine{Name: "Hand Hoe", Price: 12500, Quantity: 1, Unit: "piece"})

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Failed to marshal cart: %v", err)
	}

	restored := Decode(data)
	if len(restored.Lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(restored.Lines))
	}
	if restored.Total() != original.Total() {
		t.Errorf("Expected total %v, got %v", original.Total(), restored.Total())
	}

	// Ids keep advancing past the restored lines.
	restored.Add(models.CartLine{Name: "Drip Kit", Price: 90000, Quantity: 1})
	last := restored.Lines[len(restored.Lines)-1]
	if last.ID <= restored.Lines[1].ID {
		t.Errorf("Expected new line id above %d, got %d", restored.Lines[1].ID, last.ID)
	}
}

func TestDecodeCorruptDataResetsToEmpty(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"garbage", []byte("not json at all")},
		{"truncated", []byte(`{"lines":[{"name":"Maize`)},
		{"wrong shape", []byte(`{"lines":"oops"}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Decode(tt.data)
			if !c.IsEmpty() {
				t.Errorf("Expected empty cart, got %d lines", len(c.Lines))
			}
		})
	}
}

func TestDecodeEmptyObject(t *testing.T) {
	c := Decode([]byte(`{}`))
	if !c.IsEmpty() {
		t.Errorf("Expected empty cart, got %d lines", len(c.Lines))
	}

	c.Add(models.CartLine{Name: "Maize Seeds", Price: 5000, Quantity: 1})
	if c.Lines[0].ID != 1 {
		t.Errorf("Expected first id 1, got %d", c.Lines[0].ID)
	}
}
