package bot

import (
	"context"
	"fmt"
	"strings"

	"reminder-bot/internal/conversation"
	"reminder-bot/internal/service"
)

func promptPickNote(ctx context.Context, sender Sender, notes *service.NoteService,
	chatID int64, question string) ([]string, error) {

	names, err := notes.ListNames(ctx, chatID)
	if err != nil {
		return nil, sender.SendText(chatID, "Не удалось загрузить список заметок. Попробуйте позже.")
	}
	if len(names) == 0 {
		return nil, sender.SendText(chatID, "У вас пока нет заметок. Добавьте первую с помощью /addNote")
	}
	var b strings.Builder
	b.WriteString(question + "\n")
	for i, name := range names {
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, name))
	}
	return names, sender.SendText(chatID, strings.TrimSpace(b.String()))
}

// Wizard steps of /addNote.
const (
	addNoteStepName = iota
	addNoteStepText
)

// AddNoteCommand stores a free-form note through a name → text wizard.
type AddNoteCommand struct {
	sender Sender
	conv   *conversation.Registry
	notes  *service.NoteService
}

func (c *AddNoteCommand) Name() string        { return "addNote" }
func (c *AddNoteCommand) Description() string { return "Добавить заметку" }
func (c *AddNoteCommand) Usage() string       { return "/addNote" }

func (c *AddNoteCommand) Execute(_ context.Context, chatID int64, _ []string) error {
	c.conv.SetPending(chatID, &conversation.State{Command: c.Name(), Step: addNoteStepName})
	return c.sender.SendText(chatID, "Введите имя заметки.")
}

func (c *AddNoteCommand) Resume(ctx context.Context, chatID int64, text string, st *conversation.State) error {
	switch st.Step {
	case addNoteStepName:
		st.Name = text
		st.Step = addNoteStepText
		c.conv.SetPending(chatID, st)
		return c.sender.SendText(chatID, "Введите текст заметки.")

	case addNoteStepText:
		if err := c.notes.Add(ctx, chatID, st.Name, text); err != nil {
			return c.sender.SendText(chatID, "Ошибка при создании заметки. Возможно, имя уже занято.")
		}
		return c.sender.SendText(chatID, fmt.Sprintf("Заметка \"%s\" сохранена!", st.Name))
	}
	return nil
}

// RemoveNoteCommand deletes a note chosen from a list.
type RemoveNoteCommand struct {
	sender Sender
	conv   *conversation.Registry
	notes  *service.NoteService
}

func (c *RemoveNoteCommand) Name() string        { return "removeNote" }
func (c *RemoveNoteCommand) Description() string { return "Удалить заметку" }
func (c *RemoveNoteCommand) Usage() string       { return "/removeNote" }

func (c *RemoveNoteCommand) Execute(ctx context.Context, chatID int64, _ []string) error {
	names, err := promptPickNote(ctx, c.sender, c.notes, chatID, "Какую заметку хотите удалить?")
	if err != nil || len(names) == 0 {
		return err
	}
	c.conv.SetPending(chatID, &conversation.State{Command: c.Name()})
	return nil
}

func (c *RemoveNoteCommand) Resume(ctx context.Context, chatID int64, text string, _ *conversation.State) error {
	if err := c.notes.Remove(ctx, chatID, text); err != nil {
		return c.sender.SendText(chatID, "Не удалось удалить заметку. Попробуйте позже.")
	}
	return c.sender.SendText(chatID, fmt.Sprintf("Заметка \"%s\" удалена!", text))
}

// Wizard steps of /editNote.
const (
	editNoteStepPick = iota
	editNoteStepText
)

// EditNoteCommand replaces the text of an existing note.
type EditNoteCommand struct {
	sender Sender
	conv   *conversation.Registry
	notes  *service.NoteService
}

func (c *EditNoteCommand) Name() string        { return "editNote" }
func (c *EditNoteCommand) Description() string { return "Изменить текст заметки" }
func (c *EditNoteCommand) Usage() string       { return "/editNote" }

func (c *EditNoteCommand) Execute(ctx context.Context, chatID int64, _ []string) error {
	names, err := promptPickNote(ctx, c.sender, c.notes, chatID, "Какую заметку хотите изменить?")
	if err != nil || len(names) == 0 {
		return err
	}
	c.conv.SetPending(chatID, &conversation.State{Command: c.Name(), Step: editNoteStepPick})
	return nil
}

func (c *EditNoteCommand) Resume(ctx context.Context, chatID int64, text string, st *conversation.State) error {
	switch st.Step {
	case editNoteStepPick:
		if _, err := c.notes.Get(ctx, chatID, text); err != nil {
			return c.sender.SendText(chatID, fmt.Sprintf("Заметка \"%s\" не найдена. Операция отменена.", text))
		}
		st.Name = text
		st.Step = editNoteStepText
		c.conv.SetPending(chatID, st)
		return c.sender.SendText(chatID, "Введите новый текст заметки.")

	case editNoteStepText:
		if err := c.notes.UpdateText(ctx, chatID, st.Name, text); err != nil {
			return c.sender.SendText(chatID, "Не удалось изменить заметку. Попробуйте позже.")
		}
		return c.sender.SendText(chatID, fmt.Sprintf("Заметка \"%s\" изменена!", st.Name))
	}
	return nil
}

// ShowNoteCommand prints the text of a note chosen from a list.
type ShowNoteCommand struct {
	sender Sender
	conv   *conversation.Registry
	notes  *service.NoteService
}

func (c *ShowNoteCommand) Name() string        { return "showNote" }
func (c *ShowNoteCommand) Description() string { return "Показать заметку" }
func (c *ShowNoteCommand) Usage() string       { return "/showNote" }

func (c *ShowNoteCommand) Execute(ctx context.Context, chatID int64, _ []string) error {
	names, err := promptPickNote(ctx, c.sender, c.notes, chatID, "Какую заметку показать?")
	if err != nil || len(names) == 0 {
		return err
	}
	c.conv.SetPending(chatID, &conversation.State{Command: c.Name()})
	return nil
}

func (c *ShowNoteCommand) Resume(ctx context.Context, chatID int64, text string, _ *conversation.State) error {
	note, err := c.notes.Get(ctx, chatID, text)
	if err != nil {
		return c.sender.SendText(chatID, fmt.Sprintf("Заметка \"%s\" не найдена.", text))
	}
	return c.sender.SendText(chatID, fmt.Sprintf("\"%s\"\n%s", note.Name, note.Text))
}
