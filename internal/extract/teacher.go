package extract

import "github.com/ryabkov82/sets-merger/internal/workbook"

// Provenance показывает, как был получен идентификатор учителя
type Provenance int

const (
	// хвост достаточно длинного значения
	Derived Provenance = iota
	// короткое значение целиком
	Verbatim
	// ячейка пуста
	Unknown
)

func (p Provenance) String() string {
	switch p {
	case Derived:
		return "derived"
	case Verbatim:
		return "verbatim"
	case Unknown:
		return "unknown"
	}
	return "invalid"
}

type TeacherID struct {
	Value      string
	Provenance Provenance
}

// Teacher извлекает идентификатор из ячейки. Длина считается в символах, не в байтах.
func (l Layout) Teacher(cell workbook.Cell) TeacherID {
	if cell.IsNull() {
		return TeacherID{Value: l.UnknownTeacher, Provenance: Unknown}
	}

	runes := []rune(cell.Value)
	if len(runes) < l.TeacherSuffixLen {
		return TeacherID{Value: cell.Value, Provenance: Verbatim}
	}
	return TeacherID{Value: string(runes[len(runes)-l.TeacherSuffixLen:]), Provenance: Derived}
}
