package mysql

// -----------------------------------------------------------------------------
// DESTINATIONS
// -----------------------------------------------------------------------------

const destinationColumns = `
  d.id, d.name, d.slug, d.description, d.country, d.image, d.best_time_to_visit, d.is_featured`

const insertDestinationSQL = `
INSERT INTO destinations
  (name, slug, description, country, image, best_time_to_visit, is_featured)
VALUES
  (?, ?, ?, ?, ?, ?, ?)
`

// slug is fixed at creation and never rewritten here
const updateDestinationSQL = `
UPDATE destinations SET
  name               = ?,
  description        = ?,
  country            = ?,
  image              = ?,
  best_time_to_visit = ?,
  is_featured        = ?
WHERE id = ?
`

const insertItinerarySQL = `
INSERT INTO itineraries (destination_id, day, title, detail) VALUES (?, ?, ?, ?)
`

const listItinerarySQL = `
SELECT id, destination_id, day, title, detail
FROM itineraries
WHERE destination_id = ?
ORDER BY day, id
`

// -----------------------------------------------------------------------------
// HOTELS & AMENITIES
// -----------------------------------------------------------------------------

const hotelColumns = `
  h.id, h.destination_id, h.name, h.slug, h.description, h.address, h.phone, h.email,
  h.price_per_night, h.rating, h.image, h.is_featured, h.is_available`

const insertHotelSQL = `
INSERT INTO hotels
  (destination_id, name, slug, description, address, phone, email,
   price_per_night, rating, image, is_featured, is_available)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const updateHotelSQL = `
UPDATE hotels SET
  destination_id  = ?,
  name            = ?,
  description     = ?,
  address         = ?,
  phone           = ?,
  email           = ?,
  price_per_night = ?,
  rating          = ?,
  image           = ?,
  is_featured     = ?,
  is_available    = ?
WHERE id = ?
`

const listHotelAmenitiesSQL = `
SELECT a.id, a.name
FROM amenities a
JOIN hotel_amenities ha ON ha.amenity_id = a.id
WHERE ha.hotel_id = ?
ORDER BY a.name, a.id
`

// -----------------------------------------------------------------------------
// GALLERY
// -----------------------------------------------------------------------------

const galleryColumns = `g.id, g.caption, g.image, g.hotel_id, g.destination_id, g.uploaded_at`

const insertGallerySQL = `
INSERT INTO gallery_images (caption, image, hotel_id, destination_id, uploaded_at)
VALUES (?, ?, ?, ?, ?)
`

const updateGallerySQL = `
UPDATE gallery_images SET caption = ?, image = ?, hotel_id = ?, destination_id = ?
WHERE id = ?
`

// -----------------------------------------------------------------------------
// BLOG
// -----------------------------------------------------------------------------

const postSelect = `
SELECT
  p.id, p.title, p.slug, p.author_id, u.username,
  p.category_id, c.name, c.slug,
  p.content, p.excerpt, p.featured_image, p.status,
  p.published_at, p.views, p.created_at, p.updated_at
FROM blog_posts p
JOIN users u ON u.id = p.author_id
LEFT JOIN categories c ON c.id = p.category_id`

const postOrder = ` ORDER BY p.published_at DESC, p.id DESC`

const insertPostSQL = `
INSERT INTO blog_posts
  (title, slug, author_id, category_id, content, excerpt, featured_image,
   status, published_at, created_at, updated_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// slug is fixed at creation; views belongs to IncrementPostViews
const updatePostSQL = `
UPDATE blog_posts SET
  title          = ?,
  author_id      = ?,
  category_id    = ?,
  content        = ?,
  excerpt        = ?,
  featured_image = ?,
  status         = ?,
  published_at   = ?,
  updated_at     = ?
WHERE id = ?
`

const publishPostsPrefix = `UPDATE blog_posts SET status = 'published' WHERE id IN `

const incrementViewsSQL = `UPDATE blog_posts SET views = views + 1 WHERE id = ?`

const postTagsPrefix = `
SELECT bt.post_id, t.id, t.name, t.slug
FROM blog_post_tags bt
JOIN tags t ON t.id = bt.tag_id
WHERE bt.post_id IN `

// -----------------------------------------------------------------------------
// TESTIMONIALS & FAQ
// -----------------------------------------------------------------------------

const testimonialColumns = `id, name, designation, content, rating, is_approved, created_at`

const insertTestimonialSQL = `
INSERT INTO testimonials (name, designation, content, rating, is_approved, created_at)
VALUES (?, ?, ?, ?, ?, ?)
`

const updateTestimonialSQL = `
UPDATE testimonials SET name = ?, designation = ?, content = ?, rating = ?, is_approved = ?
WHERE id = ?
`

const approveTestimonialsPrefix = `UPDATE testimonials SET is_approved = TRUE WHERE id IN `

// -----------------------------------------------------------------------------
// ENQUIRIES & BOOKINGS
// -----------------------------------------------------------------------------

const enquiryColumns = `id, name, email, phone, subject, message, created_at, is_resolved, resolution_note`

const insertEnquirySQL = `
INSERT INTO enquiries (name, email, phone, subject, message, created_at, is_resolved)
VALUES (?, ?, ?, ?, ?, ?, FALSE)
`

const resolveEnquirySQL = `
UPDATE enquiries SET is_resolved = ?, resolution_note = ? WHERE id = ?
`

const bookingSelect = `
SELECT
  b.id, b.user_id, u.username, b.hotel_id, h.name,
  b.check_in_date, b.check_out_date, b.num_guests, b.total_price, b.status,
  b.created_at, b.updated_at
FROM bookings b
JOIN users u ON u.id = b.user_id
JOIN hotels h ON h.id = b.hotel_id`
