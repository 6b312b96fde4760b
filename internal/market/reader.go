// Package market reads listings from the marketplace contract and drives
// sale and purchase transactions.
package market

import (
	"context"
	"math/big"

	"github.com/motormint/motormint/internal/chain"
	"github.com/motormint/motormint/internal/contract"
)

// Listing is the display model for one car token. Price is a decimal
// ether string, converted once here and never re-converted downstream.
type Listing struct {
	ID          string
	Make        string
	Model       string
	Year        string
	ImageURI    string
	Price       string
	Owner       string
	ForSale     bool
	MetadataURI string
	LoadFailed  bool
}

// Error-placeholder sentinels for a listing whose metadata fetch failed.
const (
	errMake  = "Error"
	errModel = "Failed to load"
)

// Defaults for fields the contract left empty.
const (
	unknownMake  = "Unknown Make"
	unknownModel = "Unknown Model"
	unknownYear  = "Unknown Year"
)

// Catalog is the read surface of the marketplace contract.
// contract.Binding satisfies this.
type Catalog interface {
	AvailableIDs(ctx context.Context) ([]*big.Int, error)
	CarMetadata(ctx context.Context, id *big.Int) (*contract.CarRecord, error)
}

// Reader fetches and normalizes listings.
type Reader struct {
	catalog   Catalog
	fallbacks []string // static fallback images, picked by index
}

// NewReader creates a Reader. fallbacks may be empty.
func NewReader(catalog Catalog, fallbacks []string) *Reader {
	return &Reader{catalog: catalog, fallbacks: fallbacks}
}

// ListAvailable returns one Listing per available token id, in the order
// the contract reports them. A metadata fetch failing for one id produces
// an error placeholder for that entry only; the rest still load.
func (r *Reader) ListAvailable(ctx context.Context) ([]Listing, error) {
	ids, err := r.catalog.AvailableIDs(ctx)
	if err != nil {
		return nil, err
	}

	listings := make([]Listing, 0, len(ids))
	for i, id := range ids {
		rec, err := r.catalog.CarMetadata(ctx, id)
		if err != nil {
			listings = append(listings, r.placeholder(id, i))
			continue
		}
		listings = append(listings, r.normalize(id, i, rec))
	}
	return listings, nil
}

func (r *Reader) normalize(id *big.Int, index int, rec *contract.CarRecord) Listing {
	l := Listing{
		ID:          id.String(),
		Make:        rec.Make,
		Model:       rec.Model,
		ImageURI:    rec.ImageURI,
		Price:       chain.WeiToEther(rec.PriceWei),
		Owner:       rec.Owner,
		ForSale:     rec.ForSale,
		MetadataURI: rec.MetadataURI,
	}
	if l.Make == "" {
		l.Make = unknownMake
	}
	if l.Model == "" {
		l.Model = unknownModel
	}
	if rec.Year > 0 {
		l.Year = new(big.Int).SetUint64(rec.Year).String()
	} else {
		l.Year = unknownYear
	}
	if l.ImageURI == "" {
		l.ImageURI = r.fallback(index)
	}
	return l
}

func (r *Reader) placeholder(id *big.Int, index int) Listing {
	return Listing{
		ID:         id.String(),
		Make:       errMake,
		Model:      errModel,
		Year:       unknownYear,
		ImageURI:   r.fallback(index),
		Price:      "0",
		ForSale:    true,
		LoadFailed: true,
	}
}

// fallback picks a static image deterministically by index.
func (r *Reader) fallback(index int) string {
	if len(r.fallbacks) == 0 {
		return ""
	}
	return r.fallbacks[index%len(r.fallbacks)]
}
