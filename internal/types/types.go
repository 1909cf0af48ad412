package types

// Role identifies what an account is allowed to do
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStudent
}

// Scores holds the three subject scores of a student
type Scores struct {
	Chinese float64
	Math    float64
	English float64
}

// Total returns the sum of the three scores
func (s Scores) Total() float64 {
	return s.Chinese + s.Math + s.English
}

// Average returns the total divided by the number of subjects
func (s Scores) Average() float64 {
	return s.Total() / 3
}

// Student is one record of the roster. Total and Average are derived from
// the scores and only ever written by SetScores.
type Student struct {
	Name    string  `json:"name" yaml:"name"`
	Chinese float64 `json:"chinese" yaml:"chinese"`
	Math    float64 `json:"math" yaml:"math"`
	English float64 `json:"english" yaml:"english"`
	Total   float64 `json:"total" yaml:"total"`
	Average float64 `json:"average" yaml:"average"`
}

// NewStudent builds a record with derived fields already computed
func NewStudent(name string, scores Scores) Student {
	s := Student{Name: name}
	s.SetScores(scores)
	return s
}

// Scores returns the three subject scores of the record
func (s Student) Scores() Scores {
	return Scores{Chinese: s.Chinese, Math: s.Math, English: s.English}
}

// SetScores replaces all three scores and recomputes total and average
func (s *Student) SetScores(scores Scores) {
	s.Chinese = scores.Chinese
	s.Math = scores.Math
	s.English = scores.English
	s.Total = scores.Total()
	s.Average = scores.Average()
}

// Account holds the credentials of one identity. Password is the digest,
// never the plaintext; the key name matches the historical data file.
type Account struct {
	Password string `json:"password" yaml:"password"`
	Role     Role   `json:"role" yaml:"role"`
}

// Snapshot is the full persisted state: the unit of load and save
type Snapshot struct {
	Students *StudentTable      `json:"students"`
	Accounts map[string]Account `json:"accounts"`
}

// NewSnapshot returns an empty snapshot with initialized containers
func NewSnapshot() Snapshot {
	return Snapshot{
		Students: NewStudentTable(),
		Accounts: make(map[string]Account),
	}
}

// Normalize fills nil containers and recomputes derived student fields
func (s *Snapshot) Normalize() {
	if s.Students == nil {
		s.Students = NewStudentTable()
	}
	if s.Accounts == nil {
		s.Accounts = make(map[string]Account)
	}
	for _, id := range s.Students.IDs() {
		st, _ := s.Students.Get(id)
		st.SetScores(st.Scores())
		s.Students.Set(id, st)
	}
}

// StudentEntry pairs a student record with its id
type StudentEntry struct {
	ID string `json:"id" yaml:"id"`
	Student `yaml:",inline"`
}
