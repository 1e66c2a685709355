package dto

type CourseProgressDTO struct {
	CourseID  string `json:"courseId" example:"c1"`
	Completed int    `json:"completed" example:"2"`
	Total     int    `json:"total" example:"4"`
	Percent   int    `json:"percent" example:"50"`
}

type ProgressResponseDTO struct {
	PerCourse      []CourseProgressDTO `json:"perCourse"`
	OverallPercent int                 `json:"overallPercent" example:"50"`
}
