package dto

// TeacherParam is the raw `teacher` query input, which arrives either as a
// single value or as a repeated list. Normalize turns both into a list.
type TeacherParam struct {
	single *string
	list   []string
}

// SingleTeacher wraps one teacher email.
func SingleTeacher(email string) TeacherParam {
	return TeacherParam{single: &email}
}

// TeacherList wraps several teacher emails.
func TeacherList(emails []string) TeacherParam {
	return TeacherParam{list: emails}
}

// TeacherParamFromQuery classifies repeated query values.
func TeacherParamFromQuery(values []string) TeacherParam {
	if len(values) == 1 {
		return SingleTeacher(values[0])
	}
	return TeacherList(values)
}

// IsSingle reports whether the parameter carried exactly one value.
func (p TeacherParam) IsSingle() bool {
	return p.single != nil
}

// Normalize returns the teacher emails as a list with duplicates removed,
// keeping first-seen order. An absent parameter yields an empty list.
func (p TeacherParam) Normalize() []string {
	if p.single != nil {
		return []string{*p.single}
	}
	seen := make(map[string]struct{}, len(p.list))
	out := make([]string, 0, len(p.list))
	for _, email := range p.list {
		if _, ok := seen[email]; ok {
			continue
		}
		seen[email] = struct{}{}
		out = append(out, email)
	}
	return out
}
