package transport

type SigninRequest struct {
	EmpID int `json:"empId"`
}
