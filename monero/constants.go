package monero

const (
	// AtomicUnits per XMR
	AtomicUnits = 1000000000000

	TransactionUnlockTime = 10

	RequiredWalletRPCString = "v0.18.0.0"
)

// DefaultPaymentID stands for "no payment id" on the wire, the daemon cannot represent absence otherwise
const DefaultPaymentID = "0000000000000000"

const (
	PaymentIDShortSize = 8
	PaymentIDLongSize  = 32
)

const (
	MainNetwork  = 18
	TestNetwork  = 53
	StageNetwork = 24

	SubAddressMainNetwork  = 42
	SubAddressTestNetwork  = 63
	SubAddressStageNetwork = 36

	IntegratedMainNetwork  = 19
	IntegratedTestNetwork  = 54
	IntegratedStageNetwork = 25
)
