package services

import (
	"github.com/okravets/institutions-api/database"
	"github.com/okravets/institutions-api/model"
)

// ErrInstitutionNotFound signals that no aggregate exists for the requested
// id. Handlers translate it to an empty 404; it is never logged as an error.
var ErrInstitutionNotFound = database.ErrInstitutionNotFound

// InstitutionService orchestrates CRUD over the Institution aggregate,
// translating between the wire representation and the persisted model. All
// persistence goes through the store; the service itself holds no state.
type InstitutionService struct {
	store database.Storage
}

// NewInstitutionService creates a new institution service
func NewInstitutionService(store database.Storage) *InstitutionService {
	return &InstitutionService{store: store}
}

// DisciplineRequest is the wire shape of the discipline owned by an
// institution. Client-supplied ids are ignored: the store assigns them.
type DisciplineRequest struct {
	Name           string `json:"name" validate:"required"`
	Institution    string `json:"institution" validate:"required"`
	SpecialityCode string `json:"specialityCode" validate:"required"`
	Semester       int    `json:"semester" validate:"required,gt=0"`
	HoursCount     int    `json:"hoursCount" validate:"gte=0"`
	ApprovalDate   string `json:"approvalDate" validate:"required"`
	HasExam        bool   `json:"hasExam"`
}

// InstitutionRequest is the wire shape for create and update. The
// "disciplines" key carries the single owned discipline.
type InstitutionRequest struct {
	Name                  string            `json:"name" validate:"required"`
	AccreditationLevel    string            `json:"accreditationLevel" validate:"required"`
	Address               string            `json:"address" validate:"required"`
	FoundationDate        string            `json:"foundationDate" validate:"required"`
	FacultiesCount        int               `json:"facultiesCount" validate:"gte=0"`
	Website               string            `json:"website" validate:"required"`
	HasMilitaryDepartment bool              `json:"hasMilitaryDepartment"`
	Disciplines           DisciplineRequest `json:"disciplines" validate:"required"`
}

// DisciplineResponse is the wire shape of a persisted discipline.
type DisciplineResponse struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Institution    string `json:"institution"`
	SpecialityCode string `json:"specialityCode"`
	Semester       int    `json:"semester"`
	HoursCount     int    `json:"hoursCount"`
	ApprovalDate   string `json:"approvalDate"`
	HasExam        bool   `json:"hasExam"`
}

// InstitutionResponse is the wire shape of a persisted institution.
type InstitutionResponse struct {
	ID                    uint               `json:"id"`
	Name                  string             `json:"name"`
	AccreditationLevel    string             `json:"accreditationLevel"`
	Address               string             `json:"address"`
	FoundationDate        string             `json:"foundationDate"`
	FacultiesCount        int                `json:"facultiesCount"`
	Website               string             `json:"website"`
	HasMilitaryDepartment bool               `json:"hasMilitaryDepartment"`
	Disciplines           DisciplineResponse `json:"disciplines"`
}

// Create constructs a new institution and its discipline from the request,
// persists them atomically and returns the response with store-assigned ids.
func (s *InstitutionService) Create(req InstitutionRequest) (*InstitutionResponse, error) {
	inst := model.Institution{
		Name:                  req.Name,
		AccreditationLevel:    req.AccreditationLevel,
		Address:               req.Address,
		FoundationDate:        parseWireDate(req.FoundationDate),
		FacultiesCount:        req.FacultiesCount,
		Website:               req.Website,
		HasMilitaryDepartment: req.HasMilitaryDepartment,
		Discipline:            disciplineFromRequest(req.Disciplines),
	}

	if err := s.store.InsertInstitution(&inst); err != nil {
		return nil, err
	}

	resp := institutionToResponse(inst)
	return &resp, nil
}

// ReadAll returns every persisted aggregate. An empty catalog is a valid,
// non-error result.
func (s *InstitutionService) ReadAll() ([]InstitutionResponse, error) {
	institutions, err := s.store.FindAllInstitutions()
	if err != nil {
		return nil, err
	}

	responses := make([]InstitutionResponse, 0, len(institutions))
	for _, inst := range institutions {
		responses = append(responses, institutionToResponse(inst))
	}
	return responses, nil
}

// ReadByID returns the aggregate for the given id, or
// ErrInstitutionNotFound.
func (s *InstitutionService) ReadByID(id uint) (*InstitutionResponse, error) {
	inst, err := s.store.FindInstitutionByID(id)
	if err != nil {
		return nil, err
	}

	resp := institutionToResponse(*inst)
	return &resp, nil
}

// UpdateByID mutates every field of the existing institution in place and
// replaces its discipline with a brand-new record; the prior child is never
// merged into, it is superseded. Returns the post-update response.
func (s *InstitutionService) UpdateByID(id uint, req InstitutionRequest) (*InstitutionResponse, error) {
	inst, err := s.store.FindInstitutionByID(id)
	if err != nil {
		return nil, err
	}

	inst.Name = req.Name
	inst.AccreditationLevel = req.AccreditationLevel
	inst.Address = req.Address
	inst.FoundationDate = parseWireDate(req.FoundationDate)
	inst.FacultiesCount = req.FacultiesCount
	inst.Website = req.Website
	inst.HasMilitaryDepartment = req.HasMilitaryDepartment
	inst.Discipline = disciplineFromRequest(req.Disciplines)

	if err := s.store.SaveInstitution(inst); err != nil {
		return nil, err
	}

	resp := institutionToResponse(*inst)
	return &resp, nil
}

// DeleteByID removes the aggregate and returns the response exactly as it
// existed immediately before deletion.
func (s *InstitutionService) DeleteByID(id uint) (*InstitutionResponse, error) {
	inst, err := s.store.FindInstitutionByID(id)
	if err != nil {
		return nil, err
	}

	resp := institutionToResponse(*inst)

	if err := s.store.DeleteInstitution(inst); err != nil {
		return nil, err
	}
	return &resp, nil
}

func disciplineFromRequest(req DisciplineRequest) model.Discipline {
	return model.Discipline{
		Name:           req.Name,
		Institution:    req.Institution,
		SpecialityCode: req.SpecialityCode,
		Semester:       req.Semester,
		HoursCount:     req.HoursCount,
		ApprovalDate:   parseWireDate(req.ApprovalDate),
		HasExam:        req.HasExam,
	}
}

func institutionToResponse(inst model.Institution) InstitutionResponse {
	return InstitutionResponse{
		ID:                    inst.ID,
		Name:                  inst.Name,
		AccreditationLevel:    inst.AccreditationLevel,
		Address:               inst.Address,
		FoundationDate:        formatWireDate(inst.FoundationDate),
		FacultiesCount:        inst.FacultiesCount,
		Website:               inst.Website,
		HasMilitaryDepartment: inst.HasMilitaryDepartment,
		Disciplines:           disciplineToResponse(inst.Discipline),
	}
}

func disciplineToResponse(d model.Discipline) DisciplineResponse {
	return DisciplineResponse{
		ID:             d.ID,
		Name:           d.Name,
		Institution:    d.Institution,
		SpecialityCode: d.SpecialityCode,
		Semester:       d.Semester,
		HoursCount:     d.HoursCount,
		ApprovalDate:   formatWireDate(d.ApprovalDate),
		HasExam:        d.HasExam,
	}
}
