package extract

import "fmt"

// Reason причина отклонения листа
type Reason string

const (
	ReasonEmptySheet       Reason = "empty_sheet"
	ReasonInsufficientRows Reason = "insufficient_rows"
	ReasonNoDataRows       Reason = "no_data_rows"
)

// Rejection означает, что лист не подходит под соглашение. Это предупреждение, а не ошибка прогона.
type Rejection struct {
	File   string
	Sheet  string
	Reason Reason
	Rows   int
}

func (r *Rejection) Error() string {
	switch r.Reason {
	case ReasonEmptySheet:
		return fmt.Sprintf("лист %s в %s пуст", r.Sheet, r.File)
	case ReasonInsufficientRows:
		return fmt.Sprintf("в листе %s в %s недостаточно строк (%d)", r.Sheet, r.File, r.Rows)
	case ReasonNoDataRows:
		return fmt.Sprintf("в листе %s в %s нет строк данных после удаления заголовка и подвала (%d строк)", r.Sheet, r.File, r.Rows)
	}
	return fmt.Sprintf("лист %s в %s отклонён: %s", r.Sheet, r.File, r.Reason)
}

// ProcessingError непредвиденный сбой при обработке листа
type ProcessingError struct {
	File  string
	Sheet string
	Err   error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("ошибка обработки листа %s в %s: %v", e.Sheet, e.File, e.Err)
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}
