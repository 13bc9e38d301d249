package dto

// EmployeeForm is the multipart form body for creating and updating an
// employee. The image file is handled separately by the controller.
// Courses must carry at least one element; this is the single
// validation pass before the data reaches the employee service.
type EmployeeForm struct {
	Name        string   `form:"name" binding:"required"`
	Email       string   `form:"email" binding:"required,email"`
	Mobile      string   `form:"mobile" binding:"required"`
	Designation string   `form:"designation" binding:"required"`
	Gender      string   `form:"gender" binding:"required"`
	Courses     []string `form:"courses" binding:"required,min=1"`
}
