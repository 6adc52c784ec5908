package tui

import (
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/amslee/postcal/internal/models"
	"github.com/amslee/postcal/internal/planner"
	"github.com/amslee/postcal/internal/selection"
)

func platformOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, 7)
	for _, p := range models.Platforms() {
		opts = append(opts, huh.NewOption(string(p), string(p)))
	}
	opts = append(opts, huh.NewOption("unassigned", string(models.PlatformAutoPopulated)))
	return opts
}

func statusOptions() []huh.Option[string] {
	return huh.NewOptions(
		string(models.StatusDraft),
		string(models.StatusInReview),
		string(models.StatusApproved),
		string(models.StatusScheduled),
		string(models.StatusPublished),
	)
}

// newPostForm builds the add/edit form, pre-filled from an existing
// post when editing.
func (m *Model) newPostForm(existing *models.ContentItem) {
	pf := &PostFormModel{
		Platform: string(models.PlatformFacebook),
		Status:   string(models.StatusDraft),
	}
	m.editingID = ""
	if existing != nil {
		m.editingID = existing.ID
		pf.Platform = string(existing.Platform)
		pf.Content = existing.Content
		pf.Description = existing.Description
		pf.PostTime = existing.PostTime
		pf.Status = string(existing.ApprovalStatus)
	}
	m.postForm = pf

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Platform").
				Options(platformOptions()...).
				Value(&pf.Platform),
			huh.NewText().
				Title("Content").
				Value(&pf.Content),
			huh.NewInput().
				Title("Description").
				Value(&pf.Description),
			huh.NewInput().
				Title("Post time (HH:MM)").
				Value(&pf.PostTime),
			huh.NewSelect[string]().
				Title("Approval status").
				Options(statusOptions()...).
				Value(&pf.Status),
		),
	)
	m.state = StatePostForm
}

func (m *Model) newPopulateForm() {
	pf := &PopulateFormModel{
		Total:        "8",
		PerWeek:      "3",
		Distribution: string(planner.DistributionEven),
	}
	m.populateForm = pf

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Total posts").
				Value(&pf.Total).
				Validate(func(s string) error {
					_, err := strconv.Atoi(s)
					return err
				}),
			huh.NewInput().
				Title("Posts per week").
				Value(&pf.PerWeek),
			huh.NewConfirm().
				Title("Allow weekends?").
				Value(&pf.AllowWeekends),
			huh.NewSelect[string]().
				Title("Distribution").
				Options(huh.NewOptions("even", "front-loaded", "back-loaded")...).
				Value(&pf.Distribution),
		),
	)
	m.state = StatePopulateForm
}

func (m *Model) newJumpForm() {
	jf := &JumpFormModel{}
	m.jumpForm = jf
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Go to date (YYYY-MM-DD)").
				Value(&jf.Date),
		),
	)
	m.state = StateJumpForm
}

func (m *Model) newMoveForm() {
	mf := &MoveFormModel{}
	m.moveForm = mf
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Move to date (YYYY-MM-DD)").
				Value(&mf.Date),
		),
	)
	m.state = StateMoveForm
}

// newFilterForm opens the category picker with the currently active
// labels pre-selected. Taxonomies without labels get no field; with no
// labels at all the form does not open.
func (m *Model) newFilterForm() {
	if m.sel.TotalCount() == 0 {
		m.statusMsg = "no feed categories loaded"
		return
	}

	ff := &FilterFormModel{}
	var fields []huh.Field
	if labels := m.sel.EventLabels(); len(labels) > 0 {
		ff.Events = activeLabels(m.sel, selection.TaxonomyEvent, labels)
		fields = append(fields, huh.NewMultiSelect[string]().
			Title("Event categories").
			Options(huh.NewOptions(labels...)...).
			Value(&ff.Events))
	}
	if labels := m.sel.HolidayLabels(); len(labels) > 0 {
		ff.Holidays = activeLabels(m.sel, selection.TaxonomyHoliday, labels)
		fields = append(fields, huh.NewMultiSelect[string]().
			Title("Holiday categories").
			Options(huh.NewOptions(labels...)...).
			Value(&ff.Holidays))
	}
	if labels := m.sel.ObservanceLabels(); len(labels) > 0 {
		ff.Observances = activeLabels(m.sel, selection.TaxonomyObservance, labels)
		fields = append(fields, huh.NewMultiSelect[string]().
			Title("Observance categories").
			Options(huh.NewOptions(labels...)...).
			Value(&ff.Observances))
	}

	m.filterForm = ff
	m.form = huh.NewForm(huh.NewGroup(fields...))
	m.state = StateFilterForm
}

func activeLabels(sel *selection.State, tax selection.Taxonomy, labels []string) []string {
	var out []string
	for _, l := range labels {
		if sel.Selected(tax, l) {
			out = append(out, l)
		}
	}
	return out
}
