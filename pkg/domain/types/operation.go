package types

// Operation is the name of a remote operation exposed by the product download service.
type Operation string

const (
	OpPrepareDownloadFile Operation = "PrepareDownloadFile"
	OpGetDownloadFile     Operation = "GetDownloadFile"
)

func (x Operation) String() string {
	return string(x)
}
