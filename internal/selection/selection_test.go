package selection

import (
	"reflect"
	"testing"

	"github.com/amslee/postcal/internal/models"
)

func TestDeriveLabels(t *testing.T) {
	records := []models.ExternalItem{
		{Category: "Promotion"},
		{Category: "Event"},
		{Category: "Promotion"},
		{Category: ""},
		{Category: "Community"},
	}

	got := DeriveLabels(records, func(r models.ExternalItem) string { return r.Category })
	want := []string{"Community", "Event", "Promotion"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DeriveLabels() = %v, want %v", got, want)
	}
}

func TestNewAllSelected(t *testing.T) {
	s := NewAllSelected(
		[]string{"Event", "Promotion"},
		[]string{"Federal"},
		[]string{"Awareness", "Food"},
	)

	if !s.IsEverythingSelected() {
		t.Error("fresh state should have everything selected")
	}
	if s.TotalCount() != 5 {
		t.Errorf("expected 5 total labels, got %d", s.TotalCount())
	}
	if s.SelectedCount() != 5 {
		t.Errorf("expected 5 selected, got %d", s.SelectedCount())
	}
	if !s.Selected(TaxonomyEvent, "Promotion") {
		t.Error("event label should start selected")
	}
	if !s.Selected(TaxonomyObservance, "Food") {
		t.Error("observance label should start selected")
	}
}

func TestToggle(t *testing.T) {
	s := NewAllSelected([]string{"Event"}, []string{"Federal"}, []string{"Awareness"})

	s.Toggle(TaxonomyHoliday, "Federal", false)
	if s.Selected(TaxonomyHoliday, "Federal") {
		t.Error("label should be deselected")
	}
	if s.IsEverythingSelected() {
		t.Error("deselecting one label should break everything-selected")
	}
	if s.SelectedCount() != 2 {
		t.Errorf("expected 2 selected, got %d", s.SelectedCount())
	}

	s.Toggle(TaxonomyHoliday, "Federal", true)
	if !s.IsEverythingSelected() {
		t.Error("reselecting should restore everything-selected")
	}
}

func TestToggle_ObservanceSubSharesSet(t *testing.T) {
	s := NewAllSelected(nil, nil, []string{"Awareness"})

	s.Toggle(TaxonomyObservanceSub, "Awareness", false)
	if s.Selected(TaxonomyObservance, "Awareness") {
		t.Error("observance and observance-sub should share one set")
	}
}

func TestSelectAll_Idempotent(t *testing.T) {
	s := NewAllSelected([]string{"Event"}, []string{"Federal"}, []string{"Awareness"})

	s.SelectAll(false)
	if s.SelectedCount() != 0 {
		t.Errorf("expected 0 selected after deselect-all, got %d", s.SelectedCount())
	}

	s.SelectAll(true)
	s.SelectAll(true)
	if !s.IsEverythingSelected() {
		t.Error("repeated select-all should leave everything selected")
	}
	if s.SelectedCount() != s.TotalCount() {
		t.Errorf("selected %d != total %d", s.SelectedCount(), s.TotalCount())
	}
}

func TestEmptyStateIsEverythingSelected(t *testing.T) {
	s := NewAllSelected(nil, nil, nil)
	if !s.IsEverythingSelected() {
		t.Error("zero labels means everything (vacuously) selected")
	}
}
