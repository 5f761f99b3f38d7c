package models

type AnimalType string

const (
	AnimalWaterBuffalo AnimalType = "WATER_BUFFALO"
	AnimalSwampBuffalo AnimalType = "SWAMP_BUFFALO"
	AnimalCattle       AnimalType = "CATTLE"
	AnimalGoat         AnimalType = "GOAT"
	AnimalPig          AnimalType = "PIG"
	AnimalChicken      AnimalType = "CHICKEN"
)

var AnimalTypes = []AnimalType{
	AnimalWaterBuffalo,
	AnimalSwampBuffalo,
	AnimalCattle,
	AnimalGoat,
	AnimalPig,
	AnimalChicken,
}

func IsValidAnimalType(t string) bool {
	for _, v := range AnimalTypes {
		if string(v) == t {
			return true
		}
	}
	return false
}

type Gender string

const (
	GenderMale    Gender = "MALE"
	GenderFemale  Gender = "FEMALE"
	GenderUnknown Gender = "UNKNOWN"
)

func IsValidGender(g string) bool {
	switch Gender(g) {
	case GenderMale, GenderFemale, GenderUnknown:
		return true
	}
	return false
}

type AnimalStatus string

const (
	AnimalActive      AnimalStatus = "ACTIVE"
	AnimalTransferred AnimalStatus = "TRANSFERRED"
	AnimalDeceased    AnimalStatus = "DECEASED"
	AnimalSold        AnimalStatus = "SOLD"
)

func IsValidAnimalStatus(s string) bool {
	switch AnimalStatus(s) {
	case AnimalActive, AnimalTransferred, AnimalDeceased, AnimalSold:
		return true
	}
	return false
}

type ActivityStatus string

const (
	ActivityPending   ActivityStatus = "PENDING"
	ActivityCompleted ActivityStatus = "COMPLETED"
	ActivityCancelled ActivityStatus = "CANCELLED"
	ActivityOverdue   ActivityStatus = "OVERDUE"
)

func IsValidActivityStatus(s string) bool {
	switch ActivityStatus(s) {
	case ActivityPending, ActivityCompleted, ActivityCancelled, ActivityOverdue:
		return true
	}
	return false
}

type FarmRole string

const (
	FarmRoleOwner  FarmRole = "OWNER"
	FarmRoleMember FarmRole = "MEMBER"
)
