package auth

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"zid-retention-server/models"
	"zid-retention-server/utils"
	"zid-retention-server/zid"
)

// Install redirects the merchant to the Zid authorization page.
func Install(c *gin.Context) {
	authURL, err := url.Parse(os.Getenv("ZID_AUTH_URL"))
	if err != nil || authURL.String() == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "ZID_AUTH_URL is not configured"})
		return
	}

	query := authURL.Query()
	query.Set("client_id", os.Getenv("ZID_CLIENT_ID"))
	query.Set("redirect_uri", os.Getenv("ZID_REDIRECT_URI"))
	query.Set("response_type", "code")
	query.Set("scope", "read_orders read_products read_customers")
	authURL.RawQuery = query.Encode()

	c.Redirect(http.StatusFound, authURL.String())
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	ManagerToken string `json:"manager_token"`
	RefreshToken string `json:"refresh_token"`
	StoreID      int64  `json:"store_id"`
	StoreName    string `json:"store_name"`
}

// Callback exchanges the authorization code for tokens and upserts the
// merchant record. Re-authorizing an installed store refreshes its tokens.
func Callback(c *gin.Context) {
	if authErr := c.Query("error"); authErr != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Authorization failed", "details": authErr})
		return
	}

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Authorization code missing"})
		return
	}

	tokens, err := exchangeCode(code)
	if err != nil {
		log.Printf("OAuth callback error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token exchange failed", "details": err.Error()})
		return
	}

	if tokens.AccessToken == "" || tokens.StoreID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid token response"})
		return
	}

	if err := upsertMerchant(tokens); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store merchant credentials"})
		return
	}

	response := gin.H{
		"message":  "Installation successful",
		"store_id": tokens.StoreID,
	}
	if dashboardToken, err := utils.GenerateDashboardToken(tokens.StoreID); err == nil {
		response["dashboard_token"] = dashboardToken
	}

	c.JSON(http.StatusOK, response)
}

func exchangeCode(code string) (*tokenResponse, error) {
	payload, err := json.Marshal(map[string]string{
		"grant_type":    "authorization_code",
		"client_id":     os.Getenv("ZID_CLIENT_ID"),
		"client_secret": os.Getenv("ZID_CLIENT_SECRET"),
		"code":          code,
		"redirect_uri":  os.Getenv("ZID_REDIRECT_URI"),
	})
	if err != nil {
		return nil, err
	}

	resp, err := http.Post(os.Getenv("ZID_TOKEN_URL"), "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("token endpoint returned status " + resp.Status + ": " + string(body))
	}

	var tokens tokenResponse
	if err := json.Unmarshal(body, &tokens); err != nil {
		return nil, err
	}
	return &tokens, nil
}

func upsertMerchant(tokens *tokenResponse) error {
	return utils.RetentionDB.Transaction(func(tx *gorm.DB) error {
		var existing models.Merchant
		err := tx.Where("store_id = ?", tokens.StoreID).First(&existing).Error
		if err == nil {
			existing.AccessToken = tokens.AccessToken
			existing.ManagerToken = tokens.ManagerToken
			existing.RefreshToken = tokens.RefreshToken
			if tokens.StoreName != "" {
				existing.StoreName = tokens.StoreName
			}
			return tx.Save(&existing).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		return tx.Create(&models.Merchant{
			StoreID:      tokens.StoreID,
			StoreName:    tokens.StoreName,
			AccessToken:  tokens.AccessToken,
			ManagerToken: tokens.ManagerToken,
			RefreshToken: tokens.RefreshToken,
		}).Error
	})
}

// TestAPI verifies API access for an installed store by fetching a small
// products sample.
func TestAPI(c *gin.Context) {
	storeID := c.Query("store_id")
	if storeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "store_id parameter required"})
		return
	}

	var merchant models.Merchant
	if err := utils.RetentionDB.Where("store_id = ?", storeID).First(&merchant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Store not found. Please install first."})
		return
	}

	client := zid.NewClient(merchant.AccessToken)
	products, err := client.GetProducts(1, 5)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "API test failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"message":         "API connection successful",
		"store_id":        merchant.StoreID,
		"products_sample": products,
	})
}
