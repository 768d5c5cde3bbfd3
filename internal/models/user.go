package models

import "time"

// Roles and profile states. Self-registration only ever produces students;
// admins are created by other admins.
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"

	ProfileIncomplete = "incomplete"
	ProfilePending    = "pending"
	ProfileApproved   = "approved"
	ProfileRejected   = "rejected"
)

type Address struct {
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

type BankDetails struct {
	AccountHolderName string `json:"accountHolderName,omitempty"`
	AccountNumber     string `json:"accountNumber,omitempty"`
	BankName          string `json:"bankName,omitempty"`
	IFSCCode          string `json:"ifscCode,omitempty"`
	Branch            string `json:"branch,omitempty"`
}

// User never carries the password hash or session tokens; repos return the
// hash separately where login needs it.
type User struct {
	ID            string      `json:"id"`
	Email         string      `json:"email"`
	Role          string      `json:"role"` // student | admin
	ProfileStatus string      `json:"profileStatus"`
	ProfileImage  string      `json:"profileImage,omitempty"`
	FirstName     string      `json:"firstName,omitempty"`
	LastName      string      `json:"lastName,omitempty"`
	PhoneNumber   string      `json:"phoneNumber,omitempty"`
	DateOfBirth   *time.Time  `json:"dateOfBirth,omitempty"`
	Gender        string      `json:"gender,omitempty"` // male | female | other
	Address       Address     `json:"address"`
	CollegeName   string      `json:"collegeName,omitempty"`
	Department    string      `json:"department,omitempty"`
	Course        string      `json:"course,omitempty"`
	YearOfStudy   int         `json:"yearOfStudy,omitempty"`
	RollNumber    string      `json:"rollNumber,omitempty"`
	PRNNumber     string      `json:"prnNumber,omitempty"`
	AadharNumber  string      `json:"aadharNumber,omitempty"`
	BankDetails   BankDetails `json:"bankDetails"`

	ProfileFeedback    string     `json:"profileFeedback,omitempty"`
	ProfileSubmittedAt *time.Time `json:"profileSubmittedAt,omitempty"`
	ProfileApprovedAt  *time.Time `json:"profileApprovedAt,omitempty"`
	ProfileRejectedAt  *time.Time `json:"profileRejectedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProfileComplete reports whether every field required for approval is set.
// Address and bank details are optional.
func (u *User) ProfileComplete() bool {
	return u.FirstName != "" &&
		u.LastName != "" &&
		u.PhoneNumber != "" &&
		u.DateOfBirth != nil &&
		u.Gender != "" &&
		u.CollegeName != "" &&
		u.Department != "" &&
		u.Course != "" &&
		u.YearOfStudy != 0 &&
		u.RollNumber != "" &&
		u.PRNNumber != "" &&
		u.AadharNumber != ""
}

// ProfileUpdate is the full set of student-mutable profile fields. Anything
// not listed here never reaches storage.
type ProfileUpdate struct {
	FirstName    *string      `json:"firstName"`
	LastName     *string      `json:"lastName"`
	PhoneNumber  *string      `json:"phoneNumber"`
	DateOfBirth  *time.Time   `json:"dateOfBirth"`
	Gender       *string      `json:"gender"`
	Address      *Address     `json:"address"`
	CollegeName  *string      `json:"collegeName"`
	Department   *string      `json:"department"`
	Course       *string      `json:"course"`
	YearOfStudy  *int         `json:"yearOfStudy"`
	RollNumber   *string      `json:"rollNumber"`
	PRNNumber    *string      `json:"prnNumber"`
	AadharNumber *string      `json:"aadharNumber"`
	BankDetails  *BankDetails `json:"bankDetails"`
}
