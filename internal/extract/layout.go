// Package extract проверяет сырые листы и превращает их в пакеты записей.
package extract

// Layout задаёт структурное соглашение листа: блок заголовка, блок подвала,
// строка с названиями колонок и ячейка с идентификатором учителя.
type Layout struct {
	HeaderRows       int
	FooterRows       int
	LabelRow         int
	MinRows          int
	TeacherRow       int
	TeacherCol       int
	TeacherSuffixLen int
	UnknownTeacher   string
}

// DefaultLayout: две строки заголовка, две строки подвала, названия колонок во
// второй строке, учитель в A1 (последние пять символов).
func DefaultLayout() Layout {
	return Layout{
		HeaderRows:       2,
		FooterRows:       2,
		LabelRow:         1,
		MinRows:          3,
		TeacherRow:       0,
		TeacherCol:       0,
		TeacherSuffixLen: 5,
		UnknownTeacher:   "UNKNOWN",
	}
}
