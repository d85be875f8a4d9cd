package formatting

import (
	"fmt"
	"html"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Freeeeeet/club_admin/internal/model"
	"github.com/Freeeeeet/club_admin/internal/service"
)

// EmptyWeekText показывается вместо сетки, если на неделе нет слотов
const EmptyWeekText = "На этой неделе слотов нет"

// maxListedFailures сколько неудачных операций перечислять в отчёте
const maxListedFailures = 10

// WriteGrid выводит сетку недели текстовой таблицей: строки - дни, колонки - интервалы
func WriteGrid(w io.Writer, grid *service.Grid) error {
	if _, err := fmt.Fprintf(w, "%s (%s), неделя с %s\n\n",
		grid.Field.Name, FormatDuration(grid.Field.SlotDuration), FormatDate(grid.WeekStart)); err != nil {
		return err
	}
	if grid.Empty() {
		_, err := fmt.Fprintln(w, EmptyWeekText)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	header := []string{"День"}
	for _, col := range grid.Columns {
		header = append(header, col.Label())
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, day := range grid.Days {
		row := []string{fmt.Sprintf("%s %s", day.Day.Label(), FormatShortDate(day.Date))}
		for _, cell := range day.Cells {
			row = append(row, service.Label(cell))
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	return tw.Flush()
}

// FormatWeekCompact сетка недели для Telegram: по строке на день
func FormatWeekCompact(grid *service.Grid) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📅 <b>%s</b>, неделя с %s\n\n", html.EscapeString(grid.Field.Name), FormatDate(grid.WeekStart))

	if grid.Empty() {
		sb.WriteString(EmptyWeekText)
		return sb.String()
	}

	for _, day := range grid.Days {
		fmt.Fprintf(&sb, "<b>%s %s</b>\n", day.Day.Label(), FormatShortDate(day.Date))
		for i, cell := range day.Cells {
			display := GetCellDisplay(cell)
			fmt.Fprintf(&sb, "%s %s\n", display.Emoji, grid.Columns[i].Start)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("🟢 Disponible  🔴 Reservado  ⚫️/🛠 No disponible")
	return sb.String()
}

// FormatTemplate недельный шаблон по дням
func FormatTemplate(tpl model.WeeklyTemplate) string {
	var sb strings.Builder
	for _, e := range tpl {
		switch {
		case e.Closed:
			fmt.Fprintf(&sb, "%s: закрыто\n", e.Day.Label())
		case e.Complete():
			fmt.Fprintf(&sb, "%s: %s - %s\n", e.Day.Label(), *e.Start, *e.End)
		default:
			fmt.Fprintf(&sb, "%s: часы не заданы\n", e.Day.Label())
		}
	}
	return sb.String()
}

// FormatRun отчёт о синхронизации
func FormatRun(run *model.SyncRun) string {
	var sb strings.Builder

	if run.OK() {
		fmt.Fprintf(&sb, "✅ Синхронизация поля #%d завершена\n", run.FieldID)
	} else {
		fmt.Fprintf(&sb, "⚠️ Синхронизация поля #%d завершилась с ошибками\n", run.FieldID)
	}
	fmt.Fprintf(&sb, "Создано: %d %s, удалено: %d %s",
		run.Created, PluralizeSlots(run.Created),
		run.Deleted, PluralizeSlots(run.Deleted))

	if !run.OK() {
		fmt.Fprintf(&sb, ", %d %s\n\n", len(run.Failed), PluralizeErrors(len(run.Failed)))
		for i, f := range run.Failed {
			if i == maxListedFailures {
				fmt.Fprintf(&sb, "…и ещё %d\n", len(run.Failed)-maxListedFailures)
				break
			}
			fmt.Fprintf(&sb, "• %s %s %s-%s: %s\n",
				operationText(f.Kind), model.FormatDate(f.Slot.Date), f.Slot.Start, f.Slot.End, f.Error)
		}
		fmt.Fprintf(&sb, "\nПовторить: clubadmin sync retry %s", run.ID)
	}

	return sb.String()
}

func operationText(kind model.OperationKind) string {
	switch kind {
	case model.OperationCreate:
		return "создание"
	case model.OperationDelete:
		return "удаление"
	default:
		return string(kind)
	}
}
