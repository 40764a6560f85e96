package monero

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

const (
	// EncryptedAmountSize Size of a compact encrypted amount
	EncryptedAmountSize = 8
	// PaymentIdSize Size of a short encrypted payment id
	PaymentIdSize = 8
)
