package domain

import "time"

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentSuccess PaymentStatus = "SUCCESS"
	PaymentFailed  PaymentStatus = "FAILED"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentSuccess, PaymentFailed:
		return true
	}
	return false
}

type User struct {
	ID    string `db:"id"`
	Email string `db:"email"`
	Name  string `db:"name"`
}

type Course struct {
	ID       string  `db:"id"`
	Title    string  `db:"title"`
	Category string  `db:"category"`
	Price    float64 `db:"price"`
}

type Question struct {
	ID   string `db:"id"`
	Body string `db:"body"`
}

// TestQuestion is one entry of a test's composition.
type TestQuestion struct {
	QuestionID string `db:"question_id"`
	Position   int    `db:"position"`
	Marks      int    `db:"marks"`
}

type Test struct {
	ID          string         `db:"id"`
	CourseID    string         `db:"course_id"`
	Title       string         `db:"title"`
	Composition []TestQuestion `db:"-"`
}

func (t Test) TotalMarks() int {
	total := 0
	for _, q := range t.Composition {
		total += q.Marks
	}
	return total
}

type Result struct {
	ID          int64     `db:"id"`
	UserID      string    `db:"user_id"`
	TestID      string    `db:"test_id"`
	CompletedAt time.Time `db:"completed_at"`
}

// Order is the checkout intent whose id the gateway echoes back in its callback.
type Order struct {
	GatewayOrderID string    `db:"gateway_order_id"`
	UserID         string    `db:"user_id"`
	CourseID       string    `db:"course_id"`
	Amount         float64   `db:"amount"`
	CreatedAt      time.Time `db:"created_at"`
}

type Payment struct {
	ID               int64         `db:"id"`
	UserID           string        `db:"user_id"`
	CourseID         string        `db:"course_id"`
	GatewayOrderID   string        `db:"gateway_order_id"`
	GatewayPaymentID string        `db:"gateway_payment_id"`
	GatewaySignature string        `db:"gateway_signature"`
	Amount           float64       `db:"amount"`
	Status           PaymentStatus `db:"status"`
	CreatedAt        time.Time     `db:"created_at"`
}

type Enrollment struct {
	ID        int64     `db:"id"`
	UserID    string    `db:"user_id"`
	CourseID  string    `db:"course_id"`
	Progress  int       `db:"progress"`
	CreatedAt time.Time `db:"created_at"`
}

type CourseProgress struct {
	CourseID  string
	Completed int
	Total     int
	Percent   int
}

type Progress struct {
	PerCourse      []CourseProgress
	OverallPercent int
}
