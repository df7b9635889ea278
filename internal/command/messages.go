package command

import "strings"

// Messages shown to users.
const (
	MessageUnknownCommand        = "Unknown command"
	MessageInvalidCommandFormat  = "Invalid command format! \n%s"
	MessageInvalidPersonIndex    = "The person index provided is invalid"
	MessageInvalidIndex          = "Index is not a non-zero unsigned integer."
	MessagePersonsListedOverview = "%d persons listed!"
	MessageDuplicatePerson       = "This person already exists in the address book"
	MessageAddSuccess            = "New person added: %s"
	MessageDeleteSuccess         = "Deleted Person: %s"
	MessageEditSuccess           = "Edited Person: %s"
	MessageNotEdited             = "At least one field to edit must be provided."
	MessageClearSuccess          = "Address book has been cleared!"
	MessageListSuccess           = "Listed all persons"
	MessageExitAcknowledgement   = "Exiting Address Book as requested ..."
	MessageRemarkArguments       = "Index: %d, Remark: %s"
	MessageAddRemarkSuccess      = "Added remark to Person: %s"
	MessageDeleteRemarkSuccess   = "Removed remark from Person: %s"
)

// Command words.
const (
	WordAdd    = "add"
	WordEdit   = "edit"
	WordDelete = "delete"
	WordFind   = "find"
	WordList   = "list"
	WordClear  = "clear"
	WordRemark = "remark"
	WordHelp   = "help"
	WordExit   = "exit"
)

// Usage strings, one per command.
const (
	UsageAdd = WordAdd + ": Adds a person to the address book.\n" +
		"Parameters: n:NAME p:PHONE e:EMAIL [s:STATUS] [t:TAG]... [r:REMARK]\n" +
		"Example: " + WordAdd + " n:John Doe p:98765432 e:johnd@example.com t:friends t:owesMoney"

	UsageEdit = WordEdit + ": Edits the details of the person identified by the index number used in the displayed person list. " +
		"Existing values will be overwritten by the input values.\n" +
		"Parameters: INDEX (must be a positive integer) [n:NAME] [p:PHONE] [e:EMAIL] [s:STATUS] [t:TAG]...\n" +
		"Example: " + WordEdit + " 1 p:91234567 e:johndoe@example.com"

	UsageDelete = WordDelete + ": Deletes the person identified by the index number used in the displayed person list.\n" +
		"Parameters: INDEX (must be a positive integer)\n" +
		"Example: " + WordDelete + " 1"

	UsageFind = WordFind + ": Finds all persons matching every given field; within a field any keyword may match (case-insensitive, whole words).\n" +
		"Parameters: KEYWORD [MORE_KEYWORDS]... or [n:NAME...] [t:TAG...] [s:STATUS] [p:PHONE...] [e:EMAIL...]\n" +
		"Example: " + WordFind + " n:alice bob t:colleague s:contacted"

	UsageList = WordList + ": Lists all persons in the address book."

	UsageClear = WordClear + ": Clears all entries from the address book."

	UsageRemark = WordRemark + ": Edits the remark of the person identified by the index number used in the last person listing. " +
		"Existing remark will be overwritten by the input.\n" +
		"Parameters: INDEX (must be a positive integer) r:[REMARK]\n" +
		"Example: " + WordRemark + " 1 r:Likes to swim."

	UsageHelp = WordHelp + ": Shows program usage instructions."

	UsageExit = WordExit + ": Exits the program."
)

// HelpText returns the usage of every command.
func HelpText() string {
	return strings.Join([]string{
		UsageAdd, UsageEdit, UsageDelete, UsageFind, UsageList,
		UsageClear, UsageRemark, UsageHelp, UsageExit,
	}, "\n\n")
}
