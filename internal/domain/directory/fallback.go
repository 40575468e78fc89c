package directory

import (
	"fmt"
	"strconv"
)

var (
	fallbackFirstNames = []string{
		"Alice", "Bob", "Carol", "David", "Eva", "Frank", "Grace", "Hank", "Iris", "Jack",
		"Kate", "Leo", "Mia", "Nate", "Olivia", "Paul", "Quinn", "Rachel", "Sam", "Tara",
	}
	fallbackLastNames = []string{
		"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Wilson", "Moore",
		"Taylor", "Anderson", "Thomas", "Jackson", "White", "Harris", "Martin", "Thompson", "Wood", "Clark",
	}
	fallbackDepartments = []string{
		"Engineering", "Marketing", "Finance", "HR", "Sales",
		"Operations", "Design", "IT", "Legal", "Management",
	}
	fallbackJobTitles = []string{
		"Engineer", "Analyst", "Manager", "Director", "Coordinator",
		"Specialist", "Lead", "Head", "Executive", "Officer",
	}
	fallbackCities = []string{
		"New York", "Los Angeles", "Chicago", "Houston", "Phoenix",
		"Philadelphia", "San Antonio", "San Diego", "Dallas", "San Jose",
		"Austin", "London", "Paris", "Berlin", "Tokyo",
		"Sydney", "Mumbai", "Toronto", "Singapore", "Jacksonville",
	}
	fallbackGenders = []string{
		"Male", "Female", "Female", "Male", "Female", "Male", "Female", "Male", "Female", "Male",
		"Female", "Male", "Female", "Male", "Female", "Male", "Other", "Female", "Male", "Female",
	}
)

// FallbackDataset builds the deterministic 20-record demo directory used
// whenever the upstream source is unreachable or malformed. Salaries are a
// fixed ramp so derived views stay exactly reproducible.
func FallbackDataset() []Record {
	records := make([]Record, 0, len(fallbackFirstNames))
	for i := range fallbackFirstNames {
		status := "Active"
		if i%5 == 4 {
			status = "Inactive"
		}
		records = append(records, Record{
			ID:               strconv.Itoa(i + 1),
			FirstName:        fallbackFirstNames[i],
			LastName:         fallbackLastNames[i],
			Email:            fmt.Sprintf("user%d@company.com", i+1),
			PhoneNumber:      synthesizePhone(strconv.Itoa(1000 + i*37)),
			Department:       fallbackDepartments[i%10],
			JobTitle:         fallbackJobTitles[i%10],
			Salary:           float64(50000 + i*4500),
			City:             fallbackCities[i],
			Gender:           fallbackGenders[i],
			EmploymentStatus: status,
			DateOfBirth:      fmt.Sprintf("19%02d-%02d-%02d", 70+i%30, i%12+1, i%28+1),
		})
	}
	return records
}
