package repository

import (
	"github.com/Ubaid075/DOT-AI/internal/models"
	"github.com/Ubaid075/DOT-AI/internal/store"
)

type Reports struct {
	store *store.Adapter
}

func NewReports(a *store.Adapter) *Reports {
	return &Reports{store: a}
}

func emptyReports() []models.ImageReport { return []models.ImageReport{} }

func (r *Reports) List() ([]models.ImageReport, error) {
	return store.Read(r.store, store.KeyReports, emptyReports)
}

func (r *Reports) FindByID(id string) (*models.ImageReport, error) {
	reports, err := r.List()
	if err != nil {
		return nil, err
	}
	for i := range reports {
		if reports[i].ID == id {
			rep := reports[i]
			return &rep, nil
		}
	}
	return nil, nil
}

func (r *Reports) Prepend(report models.ImageReport) error {
	reports, err := r.List()
	if err != nil {
		return err
	}
	return store.Write(r.store, store.KeyReports, append([]models.ImageReport{report}, reports...))
}

func (r *Reports) SetStatus(id string, status models.ReportStatus) (bool, error) {
	reports, err := r.List()
	if err != nil {
		return false, err
	}
	found := false
	for i := range reports {
		if reports[i].ID == id {
			reports[i].Status = status
			found = true
			break
		}
	}
	if !found {
		return false, nil
	}
	return true, store.Write(r.store, store.KeyReports, reports)
}

// ResolveAllForImage marks every pending report against the image resolved.
// Used by the admin cascade after the offending image is deleted.
func (r *Reports) ResolveAllForImage(imageID string) error {
	reports, err := r.List()
	if err != nil {
		return err
	}
	for i := range reports {
		if reports[i].ImageID == imageID && reports[i].Status == models.ReportPending {
			reports[i].Status = models.ReportResolved
		}
	}
	return store.Write(r.store, store.KeyReports, reports)
}
