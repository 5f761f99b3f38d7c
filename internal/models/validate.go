package models

import (
	"math"

	"livestock-service/utils"

	"github.com/google/uuid"
)

const maxFieldLength = 255

// ValidationResult is the tagged outcome of a schema check: either Valid with
// the parsed request, or a non-empty issue list. Callers decide the HTTP
// status; validation never aborts a request by itself.
type ValidationResult struct {
	Valid  bool                    `json:"valid"`
	Issues []utils.ValidationError `json:"issues,omitempty"`
}

func resultOf(issues []utils.ValidationError) ValidationResult {
	return ValidationResult{Valid: len(issues) == 0, Issues: issues}
}

func checkLength(issues []utils.ValidationError, field string, value *string, label string) []utils.ValidationError {
	if value != nil && len(*value) > maxFieldLength {
		issues = append(issues, utils.ValidationError{
			Field:   field,
			Message: label + "ต้องไม่เกิน 255 ตัวอักษร",
		})
	}
	return issues
}

func checkMeasurements(issues []utils.ValidationError, weightKg, heightCm *float64) []utils.ValidationError {
	if weightKg != nil && *weightKg <= 0 {
		issues = append(issues, utils.ValidationError{Field: "weightKg", Message: "น้ำหนักต้องมากกว่า 0"})
	}
	if heightCm != nil {
		if *heightCm != math.Trunc(*heightCm) {
			issues = append(issues, utils.ValidationError{Field: "heightCm", Message: "ส่วนสูงต้องเป็นจำนวนเต็ม"})
		} else if *heightCm <= 0 {
			issues = append(issues, utils.ValidationError{Field: "heightCm", Message: "ส่วนสูงต้องมากกว่า 0"})
		}
	}
	return issues
}

// ValidateCreateAnimal checks the full animal schema. On success the request
// has its defaults applied in place: gender falls back to FEMALE.
func ValidateCreateAnimal(req *CreateAnimalRequest) ValidationResult {
	var issues []utils.ValidationError

	if req.TagID == "" {
		issues = append(issues, utils.ValidationError{Field: "tagId", Message: "กรุณาระบุหมายเลขแท็ก"})
	} else if len(req.TagID) > maxFieldLength {
		issues = append(issues, utils.ValidationError{Field: "tagId", Message: "หมายเลขแท็กต้องไม่เกิน 255 ตัวอักษร"})
	}

	if _, err := uuid.Parse(req.FarmID); err != nil {
		issues = append(issues, utils.ValidationError{Field: "farmId", Message: "รหัสฟาร์มไม่ถูกต้อง"})
	}

	if !IsValidAnimalType(req.Type) {
		issues = append(issues, utils.ValidationError{Field: "type", Message: "ประเภทสัตว์ไม่ถูกต้อง"})
	}

	if req.Gender == nil || *req.Gender == "" {
		gender := string(GenderFemale)
		req.Gender = &gender
	} else if !IsValidGender(*req.Gender) {
		issues = append(issues, utils.ValidationError{Field: "gender", Message: "เพศไม่ถูกต้อง"})
	}

	issues = checkLength(issues, "name", req.Name, "ชื่อ")
	issues = checkLength(issues, "color", req.Color, "สี")
	issues = checkLength(issues, "motherTag", req.MotherTag, "หมายเลขแท็กแม่")
	issues = checkLength(issues, "fatherTag", req.FatherTag, "หมายเลขแท็กพ่อ")
	issues = checkMeasurements(issues, req.WeightKg, req.HeightCm)

	return resultOf(issues)
}

// ValidateUpdateAnimal checks the editable subset. Immutable fields never
// reach this point; the request struct only decodes the editable ones.
func ValidateUpdateAnimal(req *UpdateAnimalRequest) ValidationResult {
	var issues []utils.ValidationError

	issues = checkLength(issues, "name", req.Name, "ชื่อ")
	issues = checkLength(issues, "color", req.Color, "สี")
	issues = checkLength(issues, "motherTag", req.MotherTag, "หมายเลขแท็กแม่")
	issues = checkLength(issues, "fatherTag", req.FatherTag, "หมายเลขแท็กพ่อ")
	issues = checkMeasurements(issues, req.WeightKg, req.HeightCm)

	return resultOf(issues)
}

func ValidateCreateActivity(req *CreateActivityRequest) ValidationResult {
	var issues []utils.ValidationError

	if _, err := uuid.Parse(req.AnimalID); err != nil {
		issues = append(issues, utils.ValidationError{Field: "animalId", Message: "รหัสสัตว์ไม่ถูกต้อง"})
	}
	if req.Title == "" {
		issues = append(issues, utils.ValidationError{Field: "title", Message: "กรุณาระบุชื่อกิจกรรม"})
	} else if len(req.Title) > maxFieldLength {
		issues = append(issues, utils.ValidationError{Field: "title", Message: "ชื่อกิจกรรมต้องไม่เกิน 255 ตัวอักษร"})
	}
	if req.ActivityDate.IsZero() {
		issues = append(issues, utils.ValidationError{Field: "activityDate", Message: "กรุณาระบุวันที่ทำกิจกรรม"})
	}
	if req.DueDate != nil && req.DueDate.Before(req.ActivityDate) {
		issues = append(issues, utils.ValidationError{Field: "dueDate", Message: "วันครบกำหนดต้องไม่อยู่ก่อนวันที่ทำกิจกรรม"})
	}

	return resultOf(issues)
}

func ValidateUpdateActivityStatus(req *UpdateActivityStatusRequest) ValidationResult {
	var issues []utils.ValidationError

	if !IsValidActivityStatus(req.Status) {
		issues = append(issues, utils.ValidationError{Field: "status", Message: "สถานะไม่ถูกต้อง"})
	}
	if ActivityStatus(req.Status) == ActivityCancelled &&
		(req.StatusReason == nil || *req.StatusReason == "") {
		issues = append(issues, utils.ValidationError{Field: "statusReason", Message: "กรุณาระบุเหตุผลในการยกเลิก"})
	}

	return resultOf(issues)
}

// ValidateCreateStaff sanitizes the username and email in place before
// applying the account rules.
func ValidateCreateStaff(req *CreateStaffRequest) ValidationResult {
	var issues []utils.ValidationError

	req.Username = utils.SanitizeUsername(req.Username)
	if ok, _ := utils.ValidateUsername(req.Username); !ok {
		issues = append(issues, utils.ValidationError{
			Field:   "username",
			Message: "ชื่อผู้ใช้ต้องมีความยาว 3-50 ตัวอักษร และใช้ได้เฉพาะ a-z, 0-9, _ และ -",
		})
	}

	req.Email = utils.SanitizeEmail(req.Email)
	if req.Email != nil {
		if ok, _ := utils.ValidateEmail(*req.Email); !ok {
			issues = append(issues, utils.ValidationError{Field: "email", Message: "รูปแบบอีเมลไม่ถูกต้อง"})
		}
	}

	if len(req.Password) < 8 {
		issues = append(issues, utils.ValidationError{Field: "password", Message: "รหัสผ่านต้องมีอย่างน้อย 8 ตัวอักษร"})
	}

	return resultOf(issues)
}

func ValidateCreateFarm(req *CreateFarmRequest) ValidationResult {
	var issues []utils.ValidationError

	if req.FarmName == "" {
		issues = append(issues, utils.ValidationError{Field: "farmName", Message: "กรุณาระบุชื่อฟาร์ม"})
	} else if len(req.FarmName) > maxFieldLength {
		issues = append(issues, utils.ValidationError{Field: "farmName", Message: "ชื่อฟาร์มต้องไม่เกิน 255 ตัวอักษร"})
	}
	issues = checkLength(issues, "province", req.Province, "จังหวัด")

	return resultOf(issues)
}
