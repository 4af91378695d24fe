package bot

import (
	"context"
	"fmt"
	"strings"

	"reminder-bot/internal/conversation"
	"reminder-bot/internal/service"
)

const ungroupedLabel = "<без группы>"

// AddGroupCommand "creates" a group. Groups are just tags on reminders,
// so there is nothing to store; the command exists to make the flow
// discoverable.
type AddGroupCommand struct {
	sender Sender
}

func (c *AddGroupCommand) Name() string        { return "addGroup" }
func (c *AddGroupCommand) Description() string { return "Создать группу напоминаний" }
func (c *AddGroupCommand) Usage() string       { return "/addGroup <имя>" }

func (c *AddGroupCommand) Execute(_ context.Context, chatID int64, args []string) error {
	if len(args) == 0 {
		return c.sender.SendText(chatID, "Укажите имя группы: /addGroup <имя>")
	}
	group := strings.Join(args, " ")
	return c.sender.SendText(chatID, fmt.Sprintf(
		"Группа \"%s\" готова к использованию. Добавьте в неё напоминания через /addToGroup", group))
}

// Wizard steps of /addToGroup.
const (
	addToGroupStepGroup = iota
	addToGroupStepNames
)

// AddToGroupCommand tags reminders with a group through a
// group → names wizard.
type AddToGroupCommand struct {
	sender    Sender
	conv      *conversation.Registry
	reminders *service.ReminderService
}

func (c *AddToGroupCommand) Name() string        { return "addToGroup" }
func (c *AddToGroupCommand) Description() string { return "Добавить напоминания в группу" }
func (c *AddToGroupCommand) Usage() string       { return "/addToGroup" }

func (c *AddToGroupCommand) Execute(_ context.Context, chatID int64, _ []string) error {
	c.conv.SetPending(chatID, &conversation.State{Command: c.Name(), Step: addToGroupStepGroup})
	return c.sender.SendText(chatID, "Введите имя группы.")
}

func (c *AddToGroupCommand) Resume(ctx context.Context, chatID int64, text string, st *conversation.State) error {
	switch st.Step {
	case addToGroupStepGroup:
		st.Group = text
		st.Step = addToGroupStepNames
		c.conv.SetPending(chatID, st)
		return c.sender.SendText(chatID, "Перечислите имена напоминаний через запятую.")

	case addToGroupStepNames:
		added, missed := 0, 0
		for _, part := range strings.Split(text, ",") {
			name := strings.TrimSpace(part)
			if name == "" {
				continue
			}
			if err := c.reminders.SetGroup(ctx, chatID, name, st.Group); err != nil {
				missed++
				continue
			}
			added++
		}
		msg := fmt.Sprintf("В группу \"%s\" добавлено напоминаний: %d.", st.Group, added)
		if missed > 0 {
			msg += fmt.Sprintf(" Не найдено: %d.", missed)
		}
		return c.sender.SendText(chatID, msg)
	}
	return nil
}

// Wizard steps of /removeFromGroup.
const (
	removeFromGroupStepGroup = iota
	removeFromGroupStepNames
)

// RemoveFromGroupCommand clears the group tag of reminders that are
// currently in the named group.
type RemoveFromGroupCommand struct {
	sender    Sender
	conv      *conversation.Registry
	reminders *service.ReminderService
}

func (c *RemoveFromGroupCommand) Name() string        { return "removeFromGroup" }
func (c *RemoveFromGroupCommand) Description() string { return "Убрать напоминания из группы" }
func (c *RemoveFromGroupCommand) Usage() string       { return "/removeFromGroup" }

func (c *RemoveFromGroupCommand) Execute(_ context.Context, chatID int64, _ []string) error {
	c.conv.SetPending(chatID, &conversation.State{Command: c.Name(), Step: removeFromGroupStepGroup})
	return c.sender.SendText(chatID, "Введите имя группы.")
}

func (c *RemoveFromGroupCommand) Resume(ctx context.Context, chatID int64, text string, st *conversation.State) error {
	switch st.Step {
	case removeFromGroupStepGroup:
		st.Group = text
		st.Step = removeFromGroupStepNames
		c.conv.SetPending(chatID, st)
		return c.sender.SendText(chatID, "Перечислите имена напоминаний через запятую.")

	case removeFromGroupStepNames:
		removed, missed := 0, 0
		for _, part := range strings.Split(text, ",") {
			name := strings.TrimSpace(part)
			if name == "" {
				continue
			}
			r, err := c.reminders.Get(ctx, chatID, name)
			if err != nil || r.Group() != st.Group {
				missed++
				continue
			}
			if err := c.reminders.SetGroup(ctx, chatID, name, ""); err != nil {
				missed++
				continue
			}
			removed++
		}
		msg := fmt.Sprintf("Из группы \"%s\" убрано напоминаний: %d.", st.Group, removed)
		if missed > 0 {
			msg += fmt.Sprintf(" Не найдено в группе: %d.", missed)
		}
		return c.sender.SendText(chatID, msg)
	}
	return nil
}

// ListGroupsCommand prints the distinct groups of the user's reminders.
type ListGroupsCommand struct {
	sender    Sender
	reminders *service.ReminderService
}

func (c *ListGroupsCommand) Name() string        { return "listGroups" }
func (c *ListGroupsCommand) Description() string { return "Показать список групп" }
func (c *ListGroupsCommand) Usage() string       { return "/listGroups" }

func (c *ListGroupsCommand) Execute(ctx context.Context, chatID int64, _ []string) error {
	groups, err := c.reminders.ListGroups(ctx, chatID)
	if err != nil {
		return c.sender.SendText(chatID, "Не удалось загрузить группы. Попробуйте позже.")
	}
	if len(groups) == 0 {
		return c.sender.SendText(chatID, "У вас пока нет напоминаний, а значит и групп.")
	}
	var b strings.Builder
	b.WriteString("Ваши группы:\n")
	for i, group := range groups {
		if group == "" {
			group = ungroupedLabel
		}
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, group))
	}
	return c.sender.SendText(chatID, strings.TrimSpace(b.String()))
}

// ShowGroupCommand lists the reminders of one group with their state.
type ShowGroupCommand struct {
	sender    Sender
	reminders *service.ReminderService
}

func (c *ShowGroupCommand) Name() string        { return "showGroup" }
func (c *ShowGroupCommand) Description() string { return "Показать напоминания группы" }
func (c *ShowGroupCommand) Usage() string       { return "/showGroup <имя>" }

func (c *ShowGroupCommand) Execute(ctx context.Context, chatID int64, args []string) error {
	if len(args) == 0 {
		return c.sender.SendText(chatID, "Укажите имя группы: /showGroup <имя>")
	}
	group := strings.Join(args, " ")
	inGroup, err := c.reminders.RemindersInGroup(ctx, chatID, group)
	if err != nil {
		return c.sender.SendText(chatID, "Не удалось загрузить группу. Попробуйте позже.")
	}
	if len(inGroup) == 0 {
		return c.sender.SendText(chatID, fmt.Sprintf("В группе \"%s\" нет напоминаний.", group))
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Группа \"%s\":\n", group))
	for i, r := range inGroup {
		state := "Активна"
		if !r.Enabled() {
			state = "Не активна"
		}
		b.WriteString(fmt.Sprintf("%d. %s — %s\n", i+1, r.Name, state))
	}
	return c.sender.SendText(chatID, strings.TrimSpace(b.String()))
}

// EnableGroupCommand turns on every reminder in a group.
type EnableGroupCommand struct {
	sender    Sender
	reminders *service.ReminderService
}

func (c *EnableGroupCommand) Name() string        { return "enableGroup" }
func (c *EnableGroupCommand) Description() string { return "Включить все напоминания группы" }
func (c *EnableGroupCommand) Usage() string       { return "/enableGroup <имя>" }

func (c *EnableGroupCommand) Execute(ctx context.Context, chatID int64, args []string) error {
	return toggleGroup(ctx, c.sender, c.reminders, chatID, args, true)
}

// DisableGroupCommand turns off every reminder in a group. Disabled
// reminders are kept but never fire.
type DisableGroupCommand struct {
	sender    Sender
	reminders *service.ReminderService
}

func (c *DisableGroupCommand) Name() string        { return "disableGroup" }
func (c *DisableGroupCommand) Description() string { return "Отключить все напоминания группы" }
func (c *DisableGroupCommand) Usage() string       { return "/disableGroup <имя>" }

func (c *DisableGroupCommand) Execute(ctx context.Context, chatID int64, args []string) error {
	return toggleGroup(ctx, c.sender, c.reminders, chatID, args, false)
}

func toggleGroup(ctx context.Context, sender Sender, reminders *service.ReminderService,
	chatID int64, args []string, enabled bool) error {

	verb := "включено"
	usage := "/enableGroup <имя>"
	if !enabled {
		verb = "отключено"
		usage = "/disableGroup <имя>"
	}
	if len(args) == 0 {
		return sender.SendText(chatID, "Укажите имя группы: "+usage)
	}
	group := strings.Join(args, " ")
	count, err := reminders.SetEnabledByGroup(ctx, chatID, group, enabled)
	if err != nil {
		return sender.SendText(chatID, "Не удалось изменить группу. Попробуйте позже.")
	}
	if count == 0 {
		return sender.SendText(chatID, fmt.Sprintf("В группе \"%s\" нет напоминаний.", group))
	}
	return sender.SendText(chatID, fmt.Sprintf("%d напоминаний в группе \"%s\" %s.", count, group, verb))
}
