package fixed

var (
	Zero   = New(0, 0)
	One    = New(1, 0)
	Two    = New(2, 0)
	Ten    = New(10, 0)
	NegOne = New(-1, 0)

	PointFive = New(5, 1)
)
