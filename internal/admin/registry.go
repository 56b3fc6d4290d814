// Package admin holds the declarative configuration of the admin panel: one
// ModelView per entity, in menu order.
package admin

// Widget names the form control a field is edited with.
type Widget string

const (
	WidgetText     Widget = "text"
	WidgetTextarea Widget = "textarea"
	WidgetNumber   Widget = "number"
	WidgetPassword Widget = "password"
	WidgetFile     Widget = "file"
	WidgetSelect   Widget = "select"
)

// Column is one list view column.
type Column struct {
	Field string `json:"field"`
	Label string `json:"label"`
}

// FormField describes one edit form control.
type FormField struct {
	Field    string `json:"field"`
	Label    string `json:"label"`
	Widget   Widget `json:"widget"`
	Help     string `json:"help,omitempty"`
	Accept   string `json:"accept,omitempty"`
	Required bool   `json:"required"`
}

// ModelView configures how one entity is listed and edited.
type ModelView struct {
	Identity       string      `json:"identity"`
	Name           string      `json:"name"`
	NamePlural     string      `json:"name_plural"`
	Icon           string      `json:"icon"`
	Columns        []Column    `json:"columns"`
	Form           []FormField `json:"form"`
	DetailsExclude []string    `json:"details_exclude,omitempty"`
	Searchable     []string    `json:"searchable,omitempty"`
	Sortable       []string    `json:"sortable,omitempty"`
}

// Identities of the registered views.
const (
	ViewUsers        = "users"
	ViewSpecialities = "specialities"
	ViewDirections   = "directions"
	ViewDisciplines  = "disciplines"
	ViewTeachers     = "teachers"
	ViewFeatures     = "features"
	ViewSubjects     = "subjects"
	ViewAchievements = "achievements"
)

var registry = []ModelView{
	{
		Identity:   ViewUsers,
		Name:       "Администратор",
		NamePlural: "Администраторы",
		Icon:       "fa-solid fa-user-shield",
		Columns: []Column{
			{Field: "id", Label: "ID"},
			{Field: "name", Label: "Имя"},
			{Field: "email", Label: "Email"},
		},
		Form: []FormField{
			{Field: "name", Label: "Имя", Widget: WidgetText, Required: true},
			{Field: "email", Label: "Email", Widget: WidgetText, Required: true},
			{Field: "password", Label: "Пароль (оставьте пустым, если не меняете)", Widget: WidgetPassword},
		},
		DetailsExclude: []string{"hashed_password"},
		Searchable:     []string{"name", "email"},
		Sortable:       []string{"id", "name", "email"},
	},
	{
		Identity:   ViewSpecialities,
		Name:       "Специальность",
		NamePlural: "Специальности",
		Icon:       "fa-solid fa-graduation-cap",
		Columns: []Column{
			{Field: "name", Label: "Название"},
			{Field: "qualification", Label: "Квалификация"},
			{Field: "term", Label: "Срок обучения"},
		},
		Form: []FormField{
			{Field: "name", Label: "Название", Widget: WidgetText, Required: true},
			{Field: "qualification", Label: "Квалификация", Widget: WidgetText, Required: true},
			{Field: "term", Label: "Срок обучения", Widget: WidgetNumber, Required: true},
			{Field: "direction", Label: "Направление (текст)", Widget: WidgetText, Required: true},
			{Field: "description", Label: "Описание", Widget: WidgetTextarea, Required: true},
		},
		Searchable: []string{"name", "qualification"},
		Sortable:   []string{"name", "term"},
	},
	{
		Identity:   ViewDirections,
		Name:       "Направление (План)",
		NamePlural: "Направления (План)",
		Icon:       "fa-solid fa-route",
		Columns: []Column{
			{Field: "id", Label: "ID"},
			{Field: "name", Label: "Название направления"},
		},
		Form: []FormField{
			{Field: "name", Label: "Название направления", Widget: WidgetText, Required: true},
		},
		Searchable: []string{"name"},
		Sortable:   []string{"id", "name"},
	},
	{
		Identity:   ViewDisciplines,
		Name:       "Дисциплина",
		NamePlural: "Все дисциплины",
		Icon:       "fa-solid fa-book",
		Columns: []Column{
			{Field: "id", Label: "ID"},
			{Field: "name", Label: "Название"},
			{Field: "group", Label: "Группа"},
			{Field: "direction", Label: "Направление"},
			{Field: "start_term", Label: "Начало (сем.)"},
		},
		Form: []FormField{
			{Field: "name", Label: "Название", Widget: WidgetText, Required: true},
			{Field: "direction_id", Label: "Направление", Widget: WidgetSelect, Required: true},
			{Field: "group", Label: "Группа", Widget: WidgetText},
			{Field: "start_term", Label: "Начало (сем.)", Widget: WidgetNumber, Required: true},
			{Field: "end_term", Label: "Конец (сем.)", Widget: WidgetNumber, Required: true},
		},
		Searchable: []string{"name", "group"},
		Sortable:   []string{"name", "start_term", "direction_id"},
	},
	{
		Identity:   ViewTeachers,
		Name:       "Преподаватель",
		NamePlural: "Преподаватели",
		Icon:       "fa-solid fa-chalkboard-user",
		Columns: []Column{
			{Field: "image_url", Label: "Фото"},
			{Field: "fio", Label: "ФИО"},
			{Field: "post", Label: "Должность"},
		},
		Form: []FormField{
			{Field: "fio", Label: "ФИО", Widget: WidgetText, Required: true},
			{Field: "post", Label: "Должность", Widget: WidgetText, Required: true},
			{Field: "subjects", Label: "Предметы (вводите через запятую)", Widget: WidgetTextarea, Required: true},
			{Field: "image_url", Label: "Фотография", Widget: WidgetFile, Accept: "image/*"},
		},
		Searchable: []string{"fio", "post"},
		Sortable:   []string{"fio"},
	},
	{
		Identity:   ViewFeatures,
		Name:       "Преимущество",
		NamePlural: "Преимущества",
		Icon:       "fa-solid fa-star",
		Columns: []Column{
			{Field: "title", Label: "Заголовок"},
			{Field: "svg_code", Label: "Иконка (код/класс)"},
		},
		Form: []FormField{
			{Field: "title", Label: "Заголовок", Widget: WidgetText, Required: true},
			{Field: "description", Label: "Описание", Widget: WidgetTextarea, Required: true},
			{Field: "svg_code", Label: "Иконка (код/класс)", Widget: WidgetText, Help: "Класс иконки FontAwesome (например: fa-solid fa-code)"},
		},
		Searchable: []string{"title"},
		Sortable:   []string{"title"},
	},
	{
		Identity:   ViewSubjects,
		Name:       "Технология (Стек)",
		NamePlural: "Технологии (Стек)",
		Icon:       "fa-solid fa-layer-group",
		Columns: []Column{
			{Field: "name", Label: "Название"},
			{Field: "svg_code", Label: "Иконка"},
		},
		Form: []FormField{
			{Field: "name", Label: "Название", Widget: WidgetText, Required: true},
			{Field: "description", Label: "Описание", Widget: WidgetTextarea, Required: true},
			{Field: "svg_code", Label: "Иконка", Widget: WidgetText, Help: "Класс иконки FontAwesome (например: fa-brands fa-python)"},
		},
		Searchable: []string{"name"},
		Sortable:   []string{"name"},
	},
	{
		Identity:   ViewAchievements,
		Name:       "Достижение",
		NamePlural: "Достижения",
		Icon:       "fa-solid fa-trophy",
		Columns: []Column{
			{Field: "theme", Label: "Тема (тег)"},
			{Field: "title", Label: "Заголовок"},
		},
		Form: []FormField{
			{Field: "theme", Label: "Тема (тег)", Widget: WidgetText, Required: true},
			{Field: "title", Label: "Заголовок", Widget: WidgetText, Required: true},
			{Field: "description", Label: "Описание", Widget: WidgetTextarea, Required: true},
		},
		Searchable: []string{"theme", "title"},
		Sortable:   []string{"title"},
	},
}

// Views returns a copy of the registry in menu order.
func Views() []ModelView {
	out := make([]ModelView, len(registry))
	copy(out, registry)
	return out
}

// Lookup finds a view by identity.
func Lookup(identity string) (ModelView, bool) {
	for _, v := range registry {
		if v.Identity == identity {
			return v, true
		}
	}
	return ModelView{}, false
}

// IsSortable reports whether field may be used to order the list.
func (v ModelView) IsSortable(field string) bool {
	for _, f := range v.Sortable {
		if f == field {
			return true
		}
	}
	return false
}
