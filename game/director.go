package game

// Player is the surface through which a Director plays: the live session and
// the actions a person could take on it.
type Player interface {
	Session() *Session
	Reveal(row, col int) (Status, error)
	ToggleFlag(row, col int) (Status, error)
}

type Director interface {
	/**
	 * Initialize the director
	 */
	Init(Player)

	/**
	 * Perform a single step of actions, reporting whether one was taken
	 */
	Act() (bool, error)
}
