package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medcore-io/appointment-service/internal/api/dto"
	"github.com/medcore-io/appointment-service/internal/domain"
	"github.com/medcore-io/appointment-service/internal/service"
)

// DoctorsHandler exposes the public doctor directory.
type DoctorsHandler struct {
	directory *service.DirectoryService
}

// NewDoctorsHandler constructs handler.
func NewDoctorsHandler(directory *service.DirectoryService) *DoctorsHandler {
	return &DoctorsHandler{directory: directory}
}

// ListDoctors GET /doctors?specialty=<s>.
func (h *DoctorsHandler) ListDoctors(c *fiber.Ctx) error {
	doctors, err := h.directory.ListDoctors(c.UserContext(), c.Query("specialty"))
	if err != nil {
		return err
	}

	items := make([]dto.DoctorResponse, 0, len(doctors))
	for i := range doctors {
		items = append(items, doctorResponse(&doctors[i]))
	}
	return c.JSON(dto.DoctorListResponse{Doctors: items})
}

// GetDoctor GET /doctors/:id.
func (h *DoctorsHandler) GetDoctor(c *fiber.Ctx) error {
	doctor, err := h.directory.GetDoctor(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(doctorResponse(doctor))
}

func doctorResponse(doctor *domain.Doctor) dto.DoctorResponse {
	return dto.DoctorResponse{
		ID:        doctor.ID,
		FullName:  doctor.FullName,
		Specialty: doctor.Specialty,
		Bio:       doctor.Bio,
	}
}
