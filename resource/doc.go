// Package resource reads RSC7 resource containers.
//
// An RSC7 container is a 16-byte little-endian header followed by the compressed
// content of two virtual memory regions, the system pages and the graphics pages:
//
//	┌──────────────────────────────────────────────┐
//	│ Header (16 bytes)                            │
//	│  - Ident (4 bytes): "RSC7"                   │
//	│  - Version (4 bytes)                         │
//	│  - SystemFlags (4 bytes): system page sizes  │
//	│  - GraphicsFlags (4 bytes)                   │
//	├──────────────────────────────────────────────┤
//	│ Compressed pages (raw deflate by default)    │
//	│  - system pages, then graphics pages         │
//	└──────────────────────────────────────────────┘
//
// Pointers inside the pages are virtual addresses: 0x50000000 + offset addresses the
// system region and 0x60000000 + offset the graphics region. File resolves such
// pointers to byte ranges.
//
// Page flags encode the size of a region as a base page size (0x200 << shift) times a
// weighted page count; see SizeFromFlags and FlagsForSize.
package resource
