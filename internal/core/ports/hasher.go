package ports

// Hasher computes and verifies content hashes of installed files.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// HashFile returns the lowercase hex SHA-1 of the file at path.
	HashFile(path string) (string, error)

	// Verify reports whether the file at path exists and hashes to sha1.
	// A missing file is not an error.
	Verify(path, sha1 string) (bool, error)
}
