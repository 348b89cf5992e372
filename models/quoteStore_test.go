package models_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"bitbucket.org/mmdatafocus/quotes_backend/models"
	"bitbucket.org/mmdatafocus/quotes_backend/utils"
	"github.com/shopspring/decimal"
)

func newMemoryStore() (*models.BucketQuoteStore, *models.MemoryBucket) {
	bucket := &models.MemoryBucket{}
	return models.NewQuoteStore(bucket), bucket
}

func TestSaveThenGetByIdRoundTrips(t *testing.T) {
	store, _ := newMemoryStore()
	formData := validFormData()
	formData.StampImage = "data:image/png;base64,aGVsbG8="

	saved, err := store.Save(formData)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(saved.ID, "quote_") {
		t.Errorf("unexpected id %q", saved.ID)
	}
	if saved.Name != "한빛건설 - 사무실 인테리어" {
		t.Errorf("display name = %q", saved.Name)
	}

	loaded, err := store.GetById(saved.ID)
	if err != nil {
		t.Fatalf("GetById: %v", err)
	}

	// Compare via JSON so decimal internals don't trip DeepEqual.
	wantJSON, _ := utils.MarshalToJSON(formData)
	gotJSON, _ := utils.MarshalToJSON(loaded.FormData)
	if wantJSON != gotJSON {
		t.Errorf("form data did not round-trip:\n got %s\nwant %s", gotJSON, wantJSON)
	}
}

func TestDisplayNameFallbacks(t *testing.T) {
	store, _ := newMemoryStore()

	formData := validFormData()
	formData.ProjectName = ""
	saved, err := store.Save(formData)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.Name != "한빛건설" {
		t.Errorf("name = %q, want recipient only", saved.Name)
	}

	formData = validFormData()
	formData.Recipient.CompanyName = ""
	if saved, err = store.Save(formData); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.Name != "사무실 인테리어" {
		t.Errorf("name = %q, want project only", saved.Name)
	}

	formData = validFormData()
	formData.Recipient.CompanyName = ""
	formData.ProjectName = ""
	if saved, err = store.Save(formData); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.Name != "제목 없음" {
		t.Errorf("name = %q, want placeholder", saved.Name)
	}
}

func TestGetByIdMissing(t *testing.T) {
	store, _ := newMemoryStore()

	_, err := store.GetById("quote_missing")
	if !errors.Is(err, utils.ErrorRecordNotFound) {
		t.Errorf("err = %v, want ErrorRecordNotFound", err)
	}
}

func TestDeleteByIdMissingLeavesListUnchanged(t *testing.T) {
	store, _ := newMemoryStore()
	if _, err := store.Save(validFormData()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	before, _ := store.List()

	deleted, err := store.DeleteById("quote_missing")
	if err != nil {
		t.Fatalf("DeleteById: %v", err)
	}
	if deleted {
		t.Error("DeleteById reported success for a missing id")
	}

	after, _ := store.List()
	if !reflect.DeepEqual(before, after) {
		t.Errorf("list changed: %v -> %v", before, after)
	}
}

func TestDeleteByIdRemovesOnlyThatRecord(t *testing.T) {
	store, _ := newMemoryStore()
	first, _ := store.Save(validFormData())
	second, _ := store.Save(validFormData())

	deleted, err := store.DeleteById(first.ID)
	if err != nil || !deleted {
		t.Fatalf("DeleteById = %v, %v", deleted, err)
	}

	quotes, _ := store.List()
	if len(quotes) != 1 || quotes[0].ID != second.ID {
		t.Errorf("unexpected remaining records: %v", quotes)
	}
}

func TestDeleteAllThenListEmpty(t *testing.T) {
	store, _ := newMemoryStore()
	store.Save(validFormData())
	store.Save(validFormData())

	deleted, err := store.DeleteAll()
	if err != nil || !deleted {
		t.Fatalf("DeleteAll = %v, %v", deleted, err)
	}

	quotes, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(quotes) != 0 {
		t.Errorf("list after DeleteAll has %d records", len(quotes))
	}
}

func TestCorruptedBucketDegradesToEmpty(t *testing.T) {
	bucket := &models.MemoryBucket{}
	bucket.Write([]byte("{not json"))
	store := models.NewQuoteStore(bucket)

	quotes, err := store.List()
	if err != nil {
		t.Fatalf("List on corrupted bucket: %v", err)
	}
	if len(quotes) != 0 {
		t.Errorf("corrupted bucket produced %d records", len(quotes))
	}
}

func TestSaveSurfacesWriteFailure(t *testing.T) {
	store, bucket := newMemoryStore()
	bucket.FailNext = true

	if _, err := store.Save(validFormData()); !errors.Is(err, utils.ErrorStorageFailed) {
		t.Fatalf("err = %v, want ErrorStorageFailed", err)
	}

	// The failed record must not be visible afterwards.
	quotes, _ := store.List()
	if len(quotes) != 0 {
		t.Errorf("failed save left %d records behind", len(quotes))
	}
}

func TestFileBucketRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := models.NewQuoteStore(models.NewFileBucket(dir + "/saved_quotes.json"))

	formData := validFormData()
	formData.Items[0].Quantity = decimal.NewFromFloat(2.5)

	saved, err := store.Save(formData)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := store.GetById(saved.ID)
	if err != nil {
		t.Fatalf("GetById: %v", err)
	}
	if !loaded.FormData.Items[0].Quantity.Equal(decimal.NewFromFloat(2.5)) {
		t.Errorf("quantity = %s, want 2.5", loaded.FormData.Items[0].Quantity)
	}
}
