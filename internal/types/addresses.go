package types

// HardwareAddress represents the address of a hardware
// register of the Game Boy. The hardware registers are mapped
// to memory addresses 0xFF00 - 0xFF7F & 0xFFFF.
type HardwareAddress = uint16

const (
	// P1 is the address of the P1 hardware register. The P1
	// hardware register is used to select the input keys to
	// be read by the CPU, and to read the state of the joypad.
	//
	//  Bit 5 - P15 Select Action buttons    (0=Select)
	//  Bit 4 - P14 Select Direction buttons (0=Select)
	//  Bit 3 - P13 Input: Down  or Start    (0=Pressed) (Read Only)
	//  Bit 2 - P12 Input: Up    or Select   (0=Pressed) (Read Only)
	//  Bit 1 - P11 Input: Left  or B        (0=Pressed) (Read Only)
	//  Bit 0 - P10 Input: Right or A        (0=Pressed) (Read Only)
	P1 HardwareAddress = 0xFF00
	// SB is the address of the SB hardware register. The SB
	// hardware register holds the byte to be transferred over
	// the serial port.
	SB HardwareAddress = 0xFF01
	// SC is the address of the SC hardware register. Writing a
	// value with bit 7 set starts a serial transfer.
	//
	//  Bit 7 - Transfer Start Flag (0=No transfer, 1=Start)
	//  Bit 0 - Shift Clock (0=External Clock, 1=Internal Clock)
	SC HardwareAddress = 0xFF02
	// DIV is the address of the DIV hardware register. The DIV
	// hardware register is incremented at a rate of 16384Hz. Writing
	// any value to DIV resets it to 0.
	DIV HardwareAddress = 0xFF04
	// TIMA is the address of the TIMA hardware register. The TIMA
	// hardware register is incremented at a rate specified by the TAC
	// hardware register. When TIMA overflows, it is reset to the value
	// specified by the TMA hardware register, and a timer interrupt is
	// requested.
	TIMA HardwareAddress = 0xFF05
	// TMA is the address of the TMA hardware register. The TMA
	// hardware register is loaded into TIMA when it overflows.
	TMA HardwareAddress = 0xFF06
	// TAC is the address of the TAC hardware register. The TAC
	// hardware register is used to control the timer.
	//
	//  Bit 2   - Timer Enable
	//  Bit 1-0 - Input Clock Select
	//            00: 4096   Hz
	//            01: 262144 Hz
	//            10: 65536  Hz
	//            11: 16384  Hz
	TAC HardwareAddress = 0xFF07
	// IF is the address of the IF hardware register. The IF
	// hardware register is used to request interrupts.
	//
	//  Bit 0: V-Blank Interrupt Request (INT 40h)  (1=Request)
	//  Bit 1: LCD STAT Interrupt Request (INT 48h) (1=Request)
	//  Bit 2: Timer Interrupt Request (INT 50h)    (1=Request)
	//  Bit 3: Serial Interrupt Request (INT 58h)   (1=Request)
	//  Bit 4: Joypad Interrupt Request (INT 60h)   (1=Request)
	IF HardwareAddress = 0xFF0F
	// LCDC is the address of the LCDC hardware register. The LCDC
	// hardware register is used to control the LCD.
	//
	//  Bit 7: LCD Display Enable             (0=Off, 1=On)
	//  Bit 6: Window Tile Map Display Select (0=9800-9BFF, 1=9C00-9FFF)
	//  Bit 5: Window Display Enable          (0=Off, 1=On)
	//  Bit 4: BG & Window Tile Data Select   (0=8800-97FF, 1=8000-8FFF)
	//  Bit 3: BG Tile Map Display Select     (0=9800-9BFF, 1=9C00-9FFF)
	//  Bit 2: OBJ (Sprite) Size              (0=8x8, 1=8x16)
	//  Bit 1: OBJ (Sprite) Display Enable    (0=Off, 1=On)
	//  Bit 0: BG Display                     (0=Off, 1=On)
	LCDC HardwareAddress = 0xFF40
	// STAT is the address of the STAT hardware register. The STAT
	// hardware register contains the status of the LCD, and is used
	// to report the mode the LCD is in, and to request LCD interrupts.
	//
	//  Bit 6: LYC=LY Coincidence Interrupt (1=Enable) (Read/Write)
	//  Bit 5: mode 2 OAM Interrupt         (1=Enable) (Read/Write)
	//  Bit 4: mode 1 V-Blank Interrupt     (1=Enable) (Read/Write)
	//  Bit 3: mode 0 H-Blank Interrupt     (1=Enable) (Read/Write)
	//  Bit 2: Coincidence Flag  (0:LYC<>LY, 1:LYC=LY) (Read Only)
	//  Bit 1-0: mode Flag       (mode 0-3)            (Read Only)
	STAT HardwareAddress = 0xFF41
	// SCY is the vertical scroll position of the background.
	SCY HardwareAddress = 0xFF42
	// SCX is the horizontal scroll position of the background.
	SCX HardwareAddress = 0xFF43
	// LY is the address of the LY hardware register. The LY
	// hardware register is the current scanline being rendered.
	// The range of values for LY is 0-153.
	LY HardwareAddress = 0xFF44
	// LYC is the address of the LYC hardware register. This register
	// is compared to LY. When they are the same, the coincidence flag
	// in the STAT hardware register is set, and a STAT interrupt is
	// requested if the coincidence interrupt flag is set.
	LYC HardwareAddress = 0xFF45
	// DMA is the address of the DMA hardware register. Writing a value
	// to DMA transfers 160 bytes of data from ROM or RAM to OAM.
	DMA HardwareAddress = 0xFF46
	// BGP is the address of the BGP hardware register. The BGP
	// hardware register is used to set the shade of grey to use for
	// the background palette.
	//
	//  Bit 7-6 - Shade for Color Number 3
	//  Bit 5-4 - Shade for Color Number 2
	//  Bit 3-2 - Shade for Color Number 1
	//  Bit 1-0 - Shade for Color Number 0
	BGP HardwareAddress = 0xFF47
	// OBP0 is the address of the OBP0 hardware register, sprite palette 0.
	// Bits 1-0 are ignored as colour number 0 is always transparent.
	OBP0 HardwareAddress = 0xFF48
	// OBP1 is the address of the OBP1 hardware register, sprite palette 1.
	OBP1 HardwareAddress = 0xFF49
	// WY is the Y position of the window.
	WY HardwareAddress = 0xFF4A
	// WX is the X position of the window, offset by 7. Values WX=7
	// and WY=0 locate the window at the top left of the LCD.
	WX HardwareAddress = 0xFF4B
	// IE is the address of the IE hardware register. The IE
	// hardware register is used to enable interrupts, using the
	// same bit layout as IF.
	IE HardwareAddress = 0xFFFF
)

// Memory regions of the 64KiB address space.
const (
	ROMBank0   uint16 = 0x0000 // 0000-3FFF
	ROMBankN   uint16 = 0x4000 // 4000-7FFF
	VRAM       uint16 = 0x8000 // 8000-9FFF
	ExtRAM     uint16 = 0xA000 // A000-BFFF
	WRAM       uint16 = 0xC000 // C000-DFFF
	EchoRAM    uint16 = 0xE000 // E000-FDFF
	OAM        uint16 = 0xFE00 // FE00-FE9F
	Unusable   uint16 = 0xFEA0 // FEA0-FEFF
	IO         uint16 = 0xFF00 // FF00-FF7F
	HRAM       uint16 = 0xFF80 // FF80-FFFE
	OAMSize           = 0xA0
	EchoOffset        = EchoRAM - WRAM
)

const (
	// ClockSpeed is the clock speed of the CPU in Hz.
	ClockSpeed = 4194304
	// CyclesPerFrame is the number of clock ticks in a single
	// frame (4194304 / 60, ~59.7Hz).
	CyclesPerFrame = 69905
)
