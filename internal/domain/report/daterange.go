package report

import "time"

// StartOfDay trunca un instante al inicio de su día calendario local.
// Todo el bucketing por día usa campos de calendario locales (no UTC) para
// evitar corrimientos de un día entre zonas horarias.
func StartOfDay(t time.Time) time.Time {
	t = t.In(time.Local)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

// DayKey formatea un día calendario local como YYYY-MM-DD.
func DayKey(t time.Time) string {
	return t.In(time.Local).Format("2006-01-02")
}

// Range rango de fechas seleccionado en el calendario. Los punteros nil
// representan "sin seleccionar": con un extremo ausente el reporte queda
// vacío de forma válida (no es un error).
type Range struct {
	Start *time.Time
	End   *time.Time
}

// Complete indica si ambos extremos están seleccionados.
func (r Range) Complete() bool {
	return r.Start != nil && r.End != nil
}

// Select aplica un clic de calendario sobre el rango:
//   - sin inicio, o con el rango ya completo: reinicia con {día, nil};
//   - con solo el inicio fijado: fija el fin, ordenando cronológicamente
//     sin importar el orden de los clics.
func (r Range) Select(day time.Time) Range {
	d := StartOfDay(day)
	if r.Start == nil || r.End != nil {
		return Range{Start: &d}
	}
	start := StartOfDay(*r.Start)
	if d.Before(start) {
		return Range{Start: &d, End: &start}
	}
	return Range{Start: &start, End: &d}
}

// Clear descarta la selección actual.
func (r Range) Clear() Range {
	return Range{}
}

// ── Presets de rango ──────────────────────────────────────────────────────────

// Today rango de un solo día [hoy, hoy].
func Today(now time.Time) Range {
	d := StartOfDay(now)
	return Range{Start: &d, End: &d}
}

// Last7Days rango [hoy-6, hoy]: siete días calendario inclusive.
func Last7Days(now time.Time) Range {
	end := StartOfDay(now)
	start := end.AddDate(0, 0, -6)
	return Range{Start: &start, End: &end}
}

// ThisMonth rango [primer día del mes en curso, último día del mes en curso].
func ThisMonth(now time.Time) Range {
	local := now.In(time.Local)
	start := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, -1)
	return Range{Start: &start, End: &end}
}
