package dto

// DoctorResponse is the public directory entry.
type DoctorResponse struct {
	ID        string `json:"id"`
	FullName  string `json:"full_name"`
	Specialty string `json:"specialty"`
	Bio       string `json:"bio"`
}

// DoctorListResponse wraps a directory listing.
type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
}
