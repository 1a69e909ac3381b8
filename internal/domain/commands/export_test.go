package commands

// UndeclaredVersion exports undeclaredVersion for testing.
const UndeclaredVersion = undeclaredVersion
