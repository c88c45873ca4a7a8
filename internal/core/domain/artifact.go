package domain

// FirmwareRole identifies which firmware a build tree produced. A tree holds
// exactly one role: boards running standalone or as a distributed master
// carry the runtime, satellite boards carry the satellite manager.
type FirmwareRole string

const (
	// RoleRuntime is the primary runtime firmware.
	RoleRuntime FirmwareRole = "runtime"

	// RoleSatman is the satellite manager firmware.
	RoleSatman FirmwareRole = "satman"
)

// Dir returns the firmware output directory name for the role.
func (r FirmwareRole) Dir() string {
	return string(r)
}

// Executable returns the executable image file name for the role.
func (r FirmwareRole) Executable() string {
	return string(r) + ".elf"
}

// FlashImage returns the flashable image file name for the role.
func (r FirmwareRole) FlashImage() string {
	return string(r) + ".fbi"
}

// Product kinds as recorded in the artifact manifest.
const (
	// ProductBitstream is the programmable-logic configuration.
	ProductBitstream = "bitstream"

	// ProductBootloader is the board bootloader.
	ProductBootloader = "bootloader"

	// ProductFirmware is a firmware executable image.
	ProductFirmware = "firmware"

	// ProductFlashImage is a flashable firmware image.
	ProductFlashImage = "flash_image"
)

// Product is one collected build product with its content checksum.
type Product struct {
	Kind   string `json:"kind"`
	File   string `json:"file"`
	SHA256 string `json:"sha256"`
}

// Manifest describes a collected artifact set. It is written as
// manifest.json next to the products it lists.
type Manifest struct {
	Target   string       `json:"target"`
	Variant  string       `json:"variant"`
	Role     FirmwareRole `json:"role"`
	Products []Product    `json:"products"`
}

// Product returns the manifest entry with the given kind, or false when the
// set has no such product.
func (m Manifest) Product(kind string) (Product, bool) {
	for _, p := range m.Products {
		if p.Kind == kind {
			return p, true
		}
	}
	return Product{}, false
}

// HasBootloader reports whether the set includes a bootloader.
func (m Manifest) HasBootloader() bool {
	_, ok := m.Product(ProductBootloader)
	return ok
}

// ArtifactSet is a collected set of build products ready to flash. Dir holds
// the products flat, with the manifest alongside.
type ArtifactSet struct {
	// Target is the board name the set was built for.
	Target string

	// Variant is the gateware variant the set was built for.
	Variant string

	// Dir is the directory holding the products and manifest.
	Dir string

	// Manifest lists every product in the set.
	Manifest Manifest
}

// Role returns which firmware the set carries.
func (s ArtifactSet) Role() FirmwareRole {
	return s.Manifest.Role
}
