package cli

// RunFunc is a command handler.
type RunFunc func(c *Context) error

// ArgsFunc validates positional args. Returned errors that are not ExitCoders are reported as usage errors.
type ArgsFunc func(args []string) error

// Command is one node of a command tree.
type Command struct {
	// Name is the token that selects this command (ex: "diff" in "textcompare diff a b").
	Name    string
	Aliases []string

	// Synopsis describes the positional args in help (ex: "OLD NEW [OLD NEW ...]").
	Synopsis string

	Short   string
	Long    string
	Example string

	// Version, if set on the root, enables --version.
	Version string

	Args ArgsFunc // optional
	Run  RunFunc  // optional

	parent          *Command
	children        []*Command
	localFlags      *FlagSet
	persistentFlags *FlagSet
}

// AddCommand attaches children to c. It panics on a nil, unnamed or already attached child.
func (c *Command) AddCommand(children ...*Command) {
	for _, child := range children {
		switch {
		case child == nil:
			panic("cli: AddCommand called with nil child")
		case child.parent != nil:
			panic("cli: AddCommand called with a child already attached to a parent")
		case child.Name == "":
			panic("cli: AddCommand called with a child with empty Name")
		}
		c.children = append(c.children, child)
		child.parent = c
	}
}

// Commands returns the direct children of c.
func (c *Command) Commands() []*Command {
	return append([]*Command(nil), c.children...)
}

// Flags returns c's local flags.
func (c *Command) Flags() *FlagSet {
	if c.localFlags == nil {
		c.localFlags = newFlagSet()
	}
	return c.localFlags
}

// PersistentFlags returns flags inherited by c and its descendants.
func (c *Command) PersistentFlags() *FlagSet {
	if c.persistentFlags == nil {
		c.persistentFlags = newFlagSet()
	}
	return c.persistentFlags
}

// Path is the space-separated names from the root down to c (ex: "textcompare diff").
func (c *Command) Path() string {
	if c.parent == nil {
		return c.Name
	}
	return c.parent.Path() + " " + c.Name
}

func (c *Command) root() *Command {
	for c.parent != nil {
		c = c.parent
	}
	return c
}

func (c *Command) child(token string) *Command {
	for _, child := range c.children {
		if child.Name == token {
			return child
		}
		for _, alias := range child.Aliases {
			if alias == token {
				return child
			}
		}
	}
	return nil
}

// lineage returns the commands from the root down to c.
func (c *Command) lineage() []*Command {
	if c.parent == nil {
		return []*Command{c}
	}
	return append(c.parent.lineage(), c)
}
